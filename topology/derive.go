// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/mesh"
)

var logger = meshlog.For("topology")

// DeriveCellFaces rebuilds m.CellFaces from m.FaceCells.
//
// The cell count is 1 + the largest cell id. Every face index is appended to
// the list of each cell referencing it, in face-index order, so a boundary
// face appears in one list and an internal face in exactly two.
//
// Returns (Skipped, nil) when FaceCells is empty and mesh.ErrBadFaceCells when
// a row does not hold one or two non-negative ids. Neither case modifies m.
// Complexity: O(F) time and space.
func DeriveCellFaces(m *mesh.Mesh) (Status, error) {
	if m == nil {
		return Skipped, fmt.Errorf("DeriveCellFaces: %w", ErrNilMesh)
	}
	c2f, st, err := buildCellFaces(m)
	if err != nil {
		return Skipped, fmt.Errorf("DeriveCellFaces: %w", err)
	}
	if st == Skipped {
		return Skipped, nil
	}
	m.CellFaces = c2f

	return Derived, nil
}

// DeriveCellVertices rebuilds m.CellVertices from m.CellFaces and
// m.FaceVertices. Each row is the sorted, duplicate-free union of the vertex
// indices of the cell's faces; it is a containment set, not a boundary loop.
//
// Returns (Skipped, nil) when either input is empty and mesh.ErrFaceOutOfRange
// when a cell references a face that does not exist. Neither case modifies m.
// Per-cell work runs on Options.Workers goroutines.
// Complexity: O(Σ_cells k log k) where k is the cell's vertex references.
func DeriveCellVertices(m *mesh.Mesh, opts ...Option) (Status, error) {
	if m == nil {
		return Skipped, fmt.Errorf("DeriveCellVertices: %w", ErrNilMesh)
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return Skipped, fmt.Errorf("DeriveCellVertices: %w", err)
	}
	c2v, st, err := buildCellVertices(m.CellFaces, m.FaceVertices, o.Workers)
	if err != nil {
		return Skipped, fmt.Errorf("DeriveCellVertices: %w", err)
	}
	if st == Skipped {
		return Skipped, nil
	}
	m.CellVertices = c2v

	return Derived, nil
}

// Derive rebuilds both CellFaces and CellVertices. It is all-or-nothing: m
// is written only when both relations could be built, so an error or a
// Skipped status leaves CellFaces and CellVertices as they were.
func Derive(m *mesh.Mesh, opts ...Option) (Status, error) {
	if m == nil {
		return Skipped, fmt.Errorf("Derive: %w", ErrNilMesh)
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return Skipped, fmt.Errorf("Derive: %w", err)
	}
	c2f, st, err := buildCellFaces(m)
	if err != nil {
		return Skipped, fmt.Errorf("Derive: %w", err)
	}
	if st == Skipped {
		return Skipped, nil
	}
	c2v, st, err := buildCellVertices(c2f, m.FaceVertices, o.Workers)
	if err != nil {
		return Skipped, fmt.Errorf("Derive: %w", err)
	}
	if st == Skipped {
		return Skipped, nil
	}
	m.CellFaces, m.CellVertices = c2f, c2v

	return Derived, nil
}

// buildCellFaces computes the cell→face relation without touching m.
func buildCellFaces(m *mesh.Mesh) ([][]int, Status, error) {
	if len(m.FaceCells) == 0 {
		logger.Diagf("cell faces not derived: face cells are empty")
		return nil, Skipped, nil
	}
	if err := m.CheckFaceCells(); err != nil {
		return nil, Skipped, err
	}

	nc := m.NumCells()
	// Count first so every row is allocated exactly once.
	sizes := make([]int, nc)
	for _, cs := range m.FaceCells {
		for _, c := range cs {
			sizes[c]++
		}
	}
	c2f := make([][]int, nc)
	for c, n := range sizes {
		c2f[c] = make([]int, 0, n)
	}
	for f, cs := range m.FaceCells {
		for _, c := range cs {
			c2f[c] = append(c2f[c], f)
		}
	}
	logger.Tracef("derived cell faces for %d cells from %d faces", nc, len(m.FaceCells))

	return c2f, Derived, nil
}

// buildCellVertices computes the cell→vertex relation from c2f and f2v.
func buildCellVertices(c2f, f2v [][]int, workers int) ([][]int, Status, error) {
	if len(c2f) == 0 {
		logger.Diagf("cell vertices not derived: cell faces are empty")
		return nil, Skipped, nil
	}
	if len(f2v) == 0 {
		logger.Diagf("cell vertices not derived: face vertices are empty")
		return nil, Skipped, nil
	}
	nf := len(f2v)
	for c, fs := range c2f {
		for _, f := range fs {
			if f < 0 || f >= nf {
				return nil, Skipped, fmt.Errorf("cell %d face %d not in [0,%d): %w", c, f, nf, mesh.ErrFaceOutOfRange)
			}
		}
	}

	c2v := make([][]int, len(c2f))
	if err := forEachCell(len(c2v), workers, func(c int) {
		c2v[c] = cellVertexSet(c2f[c], f2v)
	}); err != nil {
		return nil, Skipped, err
	}
	logger.Tracef("derived cell vertices for %d cells on %d workers", len(c2v), workers)

	return c2v, Derived, nil
}

// cellVertexSet concatenates the vertices of faces, then sorts and dedups.
func cellVertexSet(faces []int, f2v [][]int) []int {
	n := 0
	for _, f := range faces {
		n += len(f2v[f])
	}
	vs := make([]int, 0, n)
	for _, f := range faces {
		vs = append(vs, f2v[f]...)
	}
	slices.Sort(vs)

	return slices.Clip(slices.Compact(vs))
}

// forEachCell calls fn(c) for c in [0, n) on up to workers goroutines, each
// owning a contiguous block of cells. fn must only write state owned by c.
func forEachCell(n, workers int, fn func(c int)) error {
	if workers <= 1 || n < 2 {
		for c := 0; c < n; c++ {
			fn(c)
		}
		return nil
	}
	workers = min(workers, n)
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			for c := lo; c < hi; c++ {
				fn(c)
			}
			return nil
		})
	}

	return g.Wait()
}
