// SPDX-License-Identifier: MIT

package permute

import "fmt"

// Identity returns [0, 1, …, n-1].
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}

// Validate checks that perm is a bijection on [0, len(perm)).
// Complexity: O(n) time, O(n) bits.
func Validate(perm []int) error {
	seen := make([]bool, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) {
			return fmt.Errorf("Validate: perm[%d]=%d not in [0,%d): %w", i, p, len(perm), ErrOutOfRange)
		}
		if seen[p] {
			return fmt.Errorf("Validate: target %d repeated: %w", p, ErrNotPermutation)
		}
		seen[p] = true
	}

	return nil
}

// Apply moves s[i] to s[perm[i]] for every i, in place.
//
// Implementation:
//   - Stage 1: validate len(perm) == len(s) and that perm is a bijection.
//   - Stage 2: follow each cycle on a private copy of perm, swapping the
//     element at i into its target until position i holds its own element.
//
// The caller's perm is not modified, so Apply may be invoked repeatedly with
// the same permutation. Nothing is written when an error is returned.
// Complexity: O(n) time, O(n) extra ints (never a second copy of s).
func Apply[T any](s []T, perm []int) error {
	if len(perm) != len(s) {
		return fmt.Errorf("Apply: len(perm)=%d, len(s)=%d: %w", len(perm), len(s), ErrLengthMismatch)
	}
	if err := Validate(perm); err != nil {
		return fmt.Errorf("Apply: %w", err)
	}

	p := make([]int, len(perm))
	copy(p, perm)
	for i := range p {
		for p[i] != i {
			j := p[i]
			s[i], s[j] = s[j], s[i]
			p[i], p[j] = p[j], p[i]
		}
	}

	return nil
}

// Invert returns q such that q[perm[i]] == i.
// Converts between push and gather form of the same reordering.
func Invert(perm []int) ([]int, error) {
	if err := Validate(perm); err != nil {
		return nil, fmt.Errorf("Invert: %w", err)
	}
	q := make([]int, len(perm))
	for i, p := range perm {
		q[p] = i
	}

	return q, nil
}

// Remap rewrites every value of refs through the forwarding map fwd:
// refs[k] = fwd[refs[k]].
//
// fwd need not be a bijection; several old indices may forward to the same
// new one. All refs are range-checked against len(fwd) before the first write.
// Complexity: O(len(refs)).
func Remap(refs []int, fwd []int) error {
	if err := checkRefs(refs, len(fwd)); err != nil {
		return fmt.Errorf("Remap: %w", err)
	}
	for k, r := range refs {
		refs[k] = fwd[r]
	}

	return nil
}

// RemapAll applies Remap to every row of a jagged relation such as
// face→vertices. The whole relation is validated first; on error no row has
// been touched.
func RemapAll(lists [][]int, fwd []int) error {
	for row, refs := range lists {
		if err := checkRefs(refs, len(fwd)); err != nil {
			return fmt.Errorf("RemapAll: row %d: %w", row, err)
		}
	}
	for _, refs := range lists {
		for k, r := range refs {
			refs[k] = fwd[r]
		}
	}

	return nil
}

// checkRefs reports the first value outside [0, n).
func checkRefs(refs []int, n int) error {
	for k, r := range refs {
		if r < 0 || r >= n {
			return fmt.Errorf("ref[%d]=%d not in [0,%d): %w", k, r, n, ErrOutOfRange)
		}
	}

	return nil
}
