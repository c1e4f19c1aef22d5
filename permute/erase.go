// SPDX-License-Identifier: MIT

package permute

import "fmt"

// EraseIndices removes every element of s whose index appears in drop and
// returns the shortened slice, which shares s's backing array.
//
// drop is treated as a set: order does not matter and repeated indices are
// removed once. Survivors keep their relative order. The vacated tail of the
// backing array is zeroed so dropped elements can be collected.
//
// Implementation:
//   - Stage 1: range-check drop and mark each index in a bitmap.
//   - Stage 2: one read/write cursor pass compacting unmarked elements.
//
// Complexity: O(len(s) + len(drop)), independent of how many are dropped.
func EraseIndices[T any](s []T, drop []int) ([]T, error) {
	if len(drop) == 0 {
		return s, nil
	}
	marked := make([]bool, len(s))
	for k, d := range drop {
		if d < 0 || d >= len(s) {
			return s, fmt.Errorf("EraseIndices: drop[%d]=%d not in [0,%d): %w", k, d, len(s), ErrOutOfRange)
		}
		marked[d] = true
	}

	w := 0
	for r := range s {
		if marked[r] {
			continue
		}
		if w != r {
			s[w] = s[r]
		}
		w++
	}
	clear(s[w:])

	return s[:w], nil
}
