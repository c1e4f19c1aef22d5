// SPDX-License-Identifier: MIT

package dedup

import (
	"slices"

	"github.com/katalvlaran/lvmesh/geomkey"
	"github.com/katalvlaran/lvmesh/permute"
)

// KeyFunc extracts the numeric key of an element. Keys of one sequence must
// all have the same length.
type KeyFunc[T any] func(T) []float64

// Report summarises one SortUnique run.
type Report struct {
	Original int // elements before compaction
	Unique   int // elements after compaction
	Merged   int // Original - Unique
}

// SortUnique sorts seq by key, merges tolerant duplicates and compacts seq in
// place. It returns the compacted slice (sharing seq's backing array) and a
// forwarding map fwd with len(fwd) == len(seq) on entry, where fwd[i] is the
// index in the result of what was originally seq[i].
//
// Implementation:
//   - Stage 1: extract every key once; compute a stable sort order under
//     geomkey.Compare (exact, so the order is a strict weak ordering).
//   - Stage 2: turn the order into a push permutation and apply it to seq.
//   - Stage 3: walk the sorted keys; a new run starts whenever a key is not
//     ApproxEqual to its immediate predecessor. Non-leading members of a run
//     are scheduled for removal.
//   - Stage 4: erase the scheduled positions in one pass and compose
//     original → sorted → compacted into fwd.
//
// Postconditions: fwd is surjective onto [0, len(out)); originals judged
// duplicates (directly or through a chain) share one target; out is sorted.
// Only neighbours in sort order are compared, so two survivors can still be
// within tolerance of each other after one pass; run again on out to reach a
// fixpoint.
// Complexity: O(n log n) comparisons, O(n) extra ints and keys.
func SortUnique[T any](seq []T, key KeyFunc[T], opts ...Option) ([]T, []int) {
	out, fwd, _ := Run(seq, key, opts...)

	return out, fwd
}

// Run is SortUnique that also returns a Report.
func Run[T any](seq []T, key KeyFunc[T], opts ...Option) ([]T, []int, Report) {
	o := NewOptions(opts...)
	n := len(seq)
	if n == 0 {
		return seq, []int{}, Report{}
	}

	keys := make([][]float64, n)
	for i := range seq {
		keys[i] = key(seq[i])
	}

	order := permute.Identity(n)
	slices.SortStableFunc(order, func(a, b int) int {
		return geomkey.Compare(keys[a], keys[b])
	})

	// pos[i] is the sorted rank of original element i (push form of order).
	pos := make([]int, n)
	for rank, orig := range order {
		pos[orig] = rank
	}
	// pos is a bijection by construction; Apply cannot fail.
	_ = permute.Apply(seq, pos)

	// compact[rank] is the index of rank's run in the compacted sequence.
	compact := make([]int, n)
	drop := make([]int, 0)
	next := 0
	for rank := 0; rank < n; rank++ {
		if rank > 0 && geomkey.ApproxEqual(keys[order[rank-1]], keys[order[rank]], o.eps) {
			compact[rank] = compact[rank-1]
			drop = append(drop, rank)

			continue
		}
		compact[rank] = next
		next++
	}

	// drop holds ranks < n; EraseIndices cannot fail.
	out, _ := permute.EraseIndices(seq, drop)

	fwd := make([]int, n)
	for i := range fwd {
		fwd[i] = compact[pos[i]]
	}

	return out, fwd, Report{Original: n, Unique: len(out), Merged: n - len(out)}
}
