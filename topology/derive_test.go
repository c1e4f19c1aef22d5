// SPDX-License-Identifier: MIT

package topology_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/topology"
)

func TestDeriveCellFaces_BoundaryAndInternal(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{FaceCells: [][]int{{0}, {0, 1}, {1}}}
	st, err := topology.DeriveCellFaces(m)
	require.NoError(t, err)
	require.Equal(t, topology.Derived, st)
	require.Equal(t, [][]int{{0, 1}, {1, 2}}, m.CellFaces)
}

func TestDeriveCellFaces_FaceIndexOrder(t *testing.T) {
	t.Parallel()

	// Neighbour listed before owner still yields face-index order per cell.
	m := &mesh.Mesh{FaceCells: [][]int{{2, 0}, {1}, {0}, {1, 2}, {2}}}
	st, err := topology.DeriveCellFaces(m)
	require.NoError(t, err)
	require.Equal(t, topology.Derived, st)
	require.Equal(t, [][]int{{0, 2}, {1, 3}, {0, 3, 4}}, m.CellFaces)
}

func TestDeriveCellFaces_EmptyIsSkipped(t *testing.T) {
	var diag bytes.Buffer
	meshlog.SetLogWriters(meshlog.LogWriters{Diag: &diag})
	t.Cleanup(func() { meshlog.SetLogWriters(meshlog.LogWriters{Ops: os.Stderr}) })

	m := mesh.New()
	st, err := topology.DeriveCellFaces(m)
	require.NoError(t, err)
	require.Equal(t, topology.Skipped, st)
	require.Empty(t, m.CellFaces)
	require.Contains(t, diag.String(), "face cells are empty")
}

func TestDeriveCellFaces_BadInputLeavesMesh(t *testing.T) {
	t.Parallel()

	prev := [][]int{{7}}
	m := &mesh.Mesh{FaceCells: [][]int{{0}, {-1}}, CellFaces: prev}
	st, err := topology.DeriveCellFaces(m)
	require.ErrorIs(t, err, mesh.ErrBadFaceCells)
	require.Equal(t, topology.Skipped, st)
	require.Equal(t, [][]int{{7}}, m.CellFaces)

	_, err = topology.DeriveCellFaces(nil)
	require.ErrorIs(t, err, topology.ErrNilMesh)
}

func TestDeriveCellVertices_ConcatSortDedup(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{
		CellFaces:    [][]int{{0}, {0}},
		FaceVertices: [][]int{{0, 1, 2}, {0, 1, 2}},
	}
	st, err := topology.DeriveCellVertices(m)
	require.NoError(t, err)
	require.Equal(t, topology.Derived, st)
	require.Equal(t, [][]int{{0, 1, 2}, {0, 1, 2}}, m.CellVertices)
}

func TestDeriveCellVertices_AscendingNotWinding(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{
		CellFaces:    [][]int{{0, 1}},
		FaceVertices: [][]int{{5, 3, 9}, {9, 3, 1}},
	}
	_, err := topology.DeriveCellVertices(m)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 3, 5, 9}}, m.CellVertices)
}

func TestDeriveCellVertices_SkipsAndErrors(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{FaceVertices: [][]int{{0, 1, 2}}}
	st, err := topology.DeriveCellVertices(m)
	require.NoError(t, err)
	require.Equal(t, topology.Skipped, st)
	require.Nil(t, m.CellVertices)

	m = &mesh.Mesh{CellFaces: [][]int{{0}}}
	st, err = topology.DeriveCellVertices(m)
	require.NoError(t, err)
	require.Equal(t, topology.Skipped, st)

	m = &mesh.Mesh{CellFaces: [][]int{{0, 1}}, FaceVertices: [][]int{{0}}, CellVertices: [][]int{{42}}}
	st, err = topology.DeriveCellVertices(m)
	require.ErrorIs(t, err, mesh.ErrFaceOutOfRange)
	require.Equal(t, topology.Skipped, st)
	require.Equal(t, [][]int{{42}}, m.CellVertices)

	_, err = topology.DeriveCellVertices(&mesh.Mesh{}, topology.WithWorkers(0))
	require.ErrorIs(t, err, topology.ErrOptionViolation)
}

// hexBlock builds an nx×1×1 row of unit hexahedra in OpenFOAM ordering:
// internal faces first, then boundary faces.
func hexBlock(nx int) *mesh.Mesh {
	m := mesh.New()
	id := func(i, j, k int) int { return i + (nx+1)*(j+2*k) }
	for k := 0; k <= 1; k++ {
		for j := 0; j <= 1; j++ {
			for i := 0; i <= nx; i++ {
				m.Positions = append(m.Positions, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
			}
		}
	}
	xface := func(i int) []int { return []int{id(i, 0, 0), id(i, 1, 0), id(i, 1, 1), id(i, 0, 1)} }
	for i := 1; i < nx; i++ {
		m.FaceVertices = append(m.FaceVertices, xface(i))
		m.FaceCells = append(m.FaceCells, []int{i - 1, i})
	}
	m.FaceVertices = append(m.FaceVertices, xface(0))
	m.FaceCells = append(m.FaceCells, []int{0})
	m.FaceVertices = append(m.FaceVertices, xface(nx))
	m.FaceCells = append(m.FaceCells, []int{nx - 1})
	for i := 0; i < nx; i++ {
		m.FaceVertices = append(m.FaceVertices,
			[]int{id(i, 0, 0), id(i+1, 0, 0), id(i+1, 0, 1), id(i, 0, 1)},
			[]int{id(i, 1, 0), id(i, 1, 1), id(i+1, 1, 1), id(i+1, 1, 0)},
			[]int{id(i, 0, 0), id(i, 1, 0), id(i+1, 1, 0), id(i+1, 0, 0)},
			[]int{id(i, 0, 1), id(i+1, 0, 1), id(i+1, 1, 1), id(i, 1, 1)},
		)
		m.FaceCells = append(m.FaceCells, []int{i}, []int{i}, []int{i}, []int{i})
	}

	return m
}

func TestDerive_HexBlock(t *testing.T) {
	t.Parallel()

	m := hexBlock(3)
	st, err := topology.Derive(m)
	require.NoError(t, err)
	require.Equal(t, topology.Derived, st)
	require.Len(t, m.CellFaces, 3)
	for c, fs := range m.CellFaces {
		assert.Len(t, fs, 6, "cell %d is a hexahedron", c)
		assert.Len(t, m.CellVertices[c], 8, "cell %d has 8 corners", c)
	}
	require.NoError(t, m.Validate())
}

func TestDerive_WorkersMatchSerial(t *testing.T) {
	t.Parallel()

	serial := hexBlock(64)
	_, err := topology.Derive(serial)
	require.NoError(t, err)

	for _, w := range []int{2, 3, 8, 100} {
		par := hexBlock(64)
		_, err := topology.Derive(par, topology.WithWorkers(w))
		require.NoError(t, err)
		require.Equal(t, serial.CellVertices, par.CellVertices, "workers=%d", w)
	}

	par := hexBlock(8)
	_, err = topology.Derive(par, topology.WithAllCPUs())
	require.NoError(t, err)
}

func TestDerive_SkippedWithoutFaceCells(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{
		Positions:    []r3.Vec{{}, {X: 1}, {Y: 1}},
		FaceVertices: [][]int{{0, 1, 2}},
	}
	st, err := topology.Derive(m)
	require.NoError(t, err)
	require.Equal(t, topology.Skipped, st)
	require.Nil(t, m.CellFaces)
	require.Nil(t, m.CellVertices)
}

func TestDerive_VertexErrorLeavesMesh(t *testing.T) {
	t.Parallel()

	// Cell 0 owns faces 0 and 1 but only face 0 has vertices.
	prevCF := [][]int{{9}}
	prevCV := [][]int{{8}}
	m := &mesh.Mesh{
		Positions:    []r3.Vec{{}, {X: 1}, {Y: 1}},
		FaceVertices: [][]int{{0, 1, 2}},
		FaceCells:    [][]int{{0}, {0, 1}},
		CellFaces:    prevCF,
		CellVertices: prevCV,
	}
	st, err := topology.Derive(m)
	require.ErrorIs(t, err, mesh.ErrFaceOutOfRange)
	require.Equal(t, topology.Skipped, st)
	require.Equal(t, prevCF, m.CellFaces)
	require.Equal(t, prevCV, m.CellVertices)
}

func TestDerive_SkippedWithoutFaceVertices(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{FaceCells: [][]int{{0}, {0, 1}, {1}}}
	st, err := topology.Derive(m)
	require.NoError(t, err)
	require.Equal(t, topology.Skipped, st)
	require.Nil(t, m.CellFaces, "a skipped Derive writes nothing")
	require.Nil(t, m.CellVertices)
}

func TestDerive_NilMesh(t *testing.T) {
	t.Parallel()

	_, err := topology.Derive(nil)
	require.ErrorIs(t, err, topology.ErrNilMesh)
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "derived", topology.Derived.String())
	assert.Equal(t, "skipped", topology.Skipped.String())
	assert.Equal(t, "unknown", topology.Status(9).String())
}

func BenchmarkDerive(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m := hexBlock(4096)
		b.StartTimer()
		if _, err := topology.Derive(m, topology.WithAllCPUs()); err != nil {
			b.Fatalf("Derive: %v", err)
		}
	}
}
