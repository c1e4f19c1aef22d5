// Package geomkey compares fixed-size numeric tuples such as 3-D coordinates.
//
// Two comparisons are provided and they serve different purposes:
//
//   - Compare is an exact lexicographic order. It is a strict weak ordering
//     (NaN sorts before every number, a shorter prefix sorts first) and is the
//     only comparator that may drive a sort.
//   - ApproxEqual is an absolute-epsilon equality. It is NOT transitive and must
//     never be used as a sort comparator; it decides whether two keys that are
//     already adjacent in sorted order are tolerant duplicates.
//
// Tolerance is absolute, not relative. Two points far from the origin that
// agree to the same relative precision as two points near the origin may fail
// to compare equal. Callers merging large-coordinate meshes should scale or
// translate first.
//
//	a := geomkey.FromVec(r3.Vec{X: 0, Y: 0, Z: 0})
//	b := geomkey.FromVec(r3.Vec{X: 1e-14})
//	geomkey.ApproxEqual(a, b, 1e-12) // true
//	geomkey.Compare(a, b)            // -1
package geomkey
