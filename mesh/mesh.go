// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh owns the core arrays. See the package documentation for invariants.
type Mesh struct {
	Positions    []r3.Vec
	FaceVertices [][]int
	FaceCells    [][]int
	CellFaces    [][]int
	CellVertices [][]int
}

// Stats is a snapshot of mesh sizes.
type Stats struct {
	Vertices      int
	Faces         int
	BoundaryFaces int
	InternalFaces int
	Cells         int
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// NumCells returns 1 + the largest cell id referenced by FaceCells, or 0 when
// FaceCells is empty. Negative ids are ignored here and rejected by Validate.
// Complexity: O(total FaceCells entries).
func (m *Mesh) NumCells() int {
	if m == nil {
		return 0
	}
	maxID := -1
	for _, cs := range m.FaceCells {
		for _, c := range cs {
			if c > maxID {
				maxID = c
			}
		}
	}

	return maxID + 1
}

// Stats returns vertex, face and cell counts. Cells falls back to
// len(CellFaces) for meshes loaded without FaceCells.
func (m *Mesh) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	s := Stats{
		Vertices: len(m.Positions),
		Faces:    len(m.FaceVertices),
		Cells:    m.NumCells(),
	}
	for _, cs := range m.FaceCells {
		switch len(cs) {
		case 1:
			s.BoundaryFaces++
		case 2:
			s.InternalFaces++
		}
	}
	if s.Cells == 0 {
		s.Cells = len(m.CellFaces)
	}

	return s
}

// Clone returns a deep copy of m. Clone of nil is nil.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}

	return &Mesh{
		Positions:    slices.Clone(m.Positions),
		FaceVertices: cloneRelation(m.FaceVertices),
		FaceCells:    cloneRelation(m.FaceCells),
		CellFaces:    cloneRelation(m.CellFaces),
		CellVertices: cloneRelation(m.CellVertices),
	}
}

func cloneRelation(r [][]int) [][]int {
	if r == nil {
		return nil
	}
	out := make([][]int, len(r))
	for i, row := range r {
		out[i] = slices.Clone(row)
	}

	return out
}

// Validate checks the index invariants of m and returns the first violation.
//
// Order of checks: FaceVertices vertex range → FaceCells shape → CellFaces
// face range → CellVertices vertex range and ordering.
// Complexity: O(total relation entries).
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("Validate: %w", ErrNilMesh)
	}
	nv := len(m.Positions)
	if err := checkVertexRefs(m.FaceVertices, nv); err != nil {
		return fmt.Errorf("Validate: FaceVertices: %w", err)
	}
	for f, cs := range m.FaceCells {
		if err := checkFaceCells(f, cs); err != nil {
			return fmt.Errorf("Validate: %w", err)
		}
	}
	if nc := m.NumCells(); nc > 0 && len(m.CellFaces) > nc {
		return fmt.Errorf("Validate: %d CellFaces rows for %d cells: %w", len(m.CellFaces), nc, ErrCellOutOfRange)
	}
	nf := len(m.FaceVertices)
	for c, fs := range m.CellFaces {
		for _, f := range fs {
			if f < 0 || f >= nf {
				return fmt.Errorf("Validate: cell %d face %d not in [0,%d): %w", c, f, nf, ErrFaceOutOfRange)
			}
		}
	}
	if err := checkVertexRefs(m.CellVertices, nv); err != nil {
		return fmt.Errorf("Validate: CellVertices: %w", err)
	}
	for c, vs := range m.CellVertices {
		for k := 1; k < len(vs); k++ {
			if vs[k-1] >= vs[k] {
				return fmt.Errorf("Validate: cell %d: %w", c, ErrCellVerticesUnsorted)
			}
		}
	}

	return nil
}

// checkFaceCells validates one FaceCells row.
func checkFaceCells(f int, cs []int) error {
	if len(cs) < 1 || len(cs) > 2 {
		return fmt.Errorf("face %d has %d cells: %w", f, len(cs), ErrBadFaceCells)
	}
	for _, c := range cs {
		if c < 0 {
			return fmt.Errorf("face %d cell id %d: %w", f, c, ErrBadFaceCells)
		}
	}

	return nil
}

// CheckFaceCells validates every FaceCells row of m.
func (m *Mesh) CheckFaceCells() error {
	if m == nil {
		return ErrNilMesh
	}
	for f, cs := range m.FaceCells {
		if err := checkFaceCells(f, cs); err != nil {
			return err
		}
	}

	return nil
}

func checkVertexRefs(rel [][]int, nv int) error {
	for row, vs := range rel {
		for _, v := range vs {
			if v < 0 || v >= nv {
				return fmt.Errorf("row %d vertex %d not in [0,%d): %w", row, v, nv, ErrVertexOutOfRange)
			}
		}
	}

	return nil
}
