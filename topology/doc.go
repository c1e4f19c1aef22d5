// Package topology derives cell-level connectivity of a mesh.Mesh from its
// face-level relations.
//
//	FaceCells ──DeriveCellFaces──▶ CellFaces ──┐
//	                                           ├─DeriveCellVertices─▶ CellVertices
//	FaceVertices ──────────────────────────────┘
//
// Each derivation reports a Status. A step whose input relation is empty does
// nothing and returns Skipped with a nil error; this is the normal outcome for
// surface-only formats (STL, OBJ) that carry no FaceCells. Malformed input
// (negative cell ids, face indices out of range) returns a sentinel error. In
// both cases the mesh is left exactly as it was: results are built aside and
// assigned only once complete. Derive commits CellFaces and CellVertices
// together or not at all.
//
// The cell→vertex step is embarrassingly parallel and can fan out over
// WithWorkers(n) goroutines; the call remains synchronous.
//
// CellNeighbors, Regions and CellPath build on the same relations to answer
// which cells border which, how many disconnected pieces a mesh has and how to
// walk between two cells. The walks run on package bfs.
package topology
