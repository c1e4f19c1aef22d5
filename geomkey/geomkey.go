// SPDX-License-Identifier: MIT

package geomkey

import (
	"cmp"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultEpsilon is twice the float64 machine epsilon (2 * 2^-52).
const DefaultEpsilon = 2 * 0x1p-52

// Dim is the number of components in a position key.
const Dim = 3

// ApproxEqual reports whether every component of a and b differs by at most
// eps in absolute value.
//
// Comparison is truncated to the shorter of the two tuples: components past
// min(len(a), len(b)) are treated as equal. Passing tuples of different length
// is a caller error that is not signalled.
// Complexity: O(min(len(a), len(b))).
func ApproxEqual(a, b []float64, eps float64) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if !scalar.EqualWithinAbs(a[i], b[i], eps) {
			return false
		}
	}

	return true
}

// Equal is ApproxEqual with DefaultEpsilon.
func Equal(a, b []float64) bool {
	return ApproxEqual(a, b, DefaultEpsilon)
}

// Compare orders a and b lexicographically by component, exactly.
// It returns -1, 0 or +1. NaN components sort before any number and compare
// equal to each other, so the result is a strict weak ordering even for dirty
// input. When one tuple is a prefix of the other the shorter one sorts first.
func Compare(a, b []float64) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(len(a), len(b))
}

// Less reports whether a sorts strictly before b under Compare.
func Less(a, b []float64) bool {
	return Compare(a, b) < 0
}

// FromVec returns the position key of v as a freshly allocated slice.
func FromVec(v r3.Vec) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
