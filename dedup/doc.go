// Package dedup implements the sort-unique-reindex primitive: it sorts a
// keyed sequence, merges tolerant duplicates, compacts the storage and returns
// a forwarding map from every original position to its surviving
// representative.
//
// Merging decisions are made between ADJACENT elements of the sorted order
// only. Because sorting brings equal and nearly equal keys together, a chain
// of keys each within tolerance of its neighbour collapses into one run even
// when the chain's endpoints are further apart than the tolerance. This is
// intended and callers relying on it (vertex welding) expect it.
//
// The tolerance is absolute, per key component. Points far from the origin
// whose coordinates agree only to a relative precision may stay separate.
//
// This package is the only place floating-point tolerance enters the mesh
// pipeline. Everything downstream of the forwarding map is exact integer
// lookup (see package permute).
package dedup
