// SPDX-License-Identifier: MIT

package mesh

import "errors"

// Sentinel errors for mesh validation and mutation. Returned wrapped with the
// operation name; match with errors.Is.
var (
	// ErrNilMesh indicates a nil *Mesh was passed.
	ErrNilMesh = errors.New("mesh: mesh is nil")

	// ErrVertexOutOfRange indicates a vertex index outside [0, len(Positions)).
	ErrVertexOutOfRange = errors.New("mesh: vertex index out of range")

	// ErrFaceOutOfRange indicates a face index outside [0, len(FaceVertices)).
	ErrFaceOutOfRange = errors.New("mesh: face index out of range")

	// ErrBadFaceCells indicates a FaceCells row without exactly one or two
	// non-negative cell ids.
	ErrBadFaceCells = errors.New("mesh: face must reference one or two cells")

	// ErrCellOutOfRange indicates a cell index outside [0, NumCells()).
	ErrCellOutOfRange = errors.New("mesh: cell index out of range")

	// ErrCellVerticesUnsorted indicates a CellVertices row that is not
	// strictly ascending.
	ErrCellVerticesUnsorted = errors.New("mesh: cell vertices not sorted and unique")
)
