// Package mesh holds the five core arrays of an unstructured polyhedral mesh
// and the vertex-merge operation that canonicalizes them.
//
//	Positions     vertex set; a vertex is identified by its index
//	FaceVertices  face → ordered vertex indices (winding preserved)
//	FaceCells     face → owner [, neighbour]; one entry = boundary face
//	CellFaces     cell → faces (derived, see package topology)
//	CellVertices  cell → sorted, duplicate-free vertex set (derived)
//
// A Mesh is constructed empty, populated by one loader (package meshio),
// mutated in place by derivation and merge operations, and read by one
// writer. It is not safe for concurrent use: every operation assumes it has
// exclusive access for its duration.
//
// Invariants that hold after every operation in this module:
//
//	(a) every vertex index in FaceVertices and CellVertices is < len(Positions)
//	(b) every face index in CellFaces is < len(FaceVertices) and every cell
//	    index implied by FaceCells is < NumCells()
//	(c) each CellVertices row is sorted ascending with no duplicates
//	(d) MergeCoincidentVertices never reorders faces or changes winding
//
// Validate checks (a) to (c) explicitly.
package mesh
