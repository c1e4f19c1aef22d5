// SPDX-License-Identifier: MIT

package permute

import "errors"

var (
	// ErrLengthMismatch indicates the permutation and the sequence differ in length.
	ErrLengthMismatch = errors.New("permute: length mismatch")

	// ErrOutOfRange indicates an index outside [0, n).
	ErrOutOfRange = errors.New("permute: index out of range")

	// ErrNotPermutation indicates perm repeats a target, so it is not a bijection.
	ErrNotPermutation = errors.New("permute: not a permutation")
)
