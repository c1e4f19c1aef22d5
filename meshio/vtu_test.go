package meshio

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/mesh"
)

// twoTets returns two tetrahedra sharing face 0 with cell faces derived.
func twoTets() *mesh.Mesh {
	return &mesh.Mesh{
		Positions: []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 1, Z: 1}},
		FaceVertices: [][]int{
			{1, 2, 3}, {0, 2, 1}, {0, 1, 3}, {0, 3, 2},
			{1, 2, 4}, {2, 3, 4}, {1, 3, 4},
		},
		FaceCells: [][]int{{0, 1}, {0}, {0}, {0}, {1}, {1}, {1}},
		CellFaces: [][]int{{0, 1, 2, 3}, {0, 4, 5, 6}},
	}
}

func dataArrays(t *testing.T, data []byte) (vtkPiece, map[string]string) {
	t.Helper()

	var doc vtkFile
	require.NoError(t, xml.Unmarshal(data, &doc))
	require.Equal(t, "UnstructuredGrid", doc.Type)
	arrays := map[string]string{}
	for _, a := range doc.Grid.Piece.Cells.Arrays {
		arrays[a.Name] = strings.Join(strings.Fields(a.Data), " ")
	}
	for _, a := range doc.Grid.Piece.Points.Arrays {
		arrays[a.Name] = strings.Join(strings.Fields(a.Data), " ")
	}

	return doc.Grid.Piece, arrays
}

func TestVTU_SavePolyhedra(t *testing.T) {
	t.Parallel()

	m := twoTets()
	before := m.Clone()
	fsys := fsutil.NewMemory()
	ok, err := Save(fsys, "out/cells.vtu", m)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, before, m, "cell vertices are derived on a copy")

	data, ok := fsys.Bytes("out/cells.vtu")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(string(data), "<?xml"))

	piece, arrays := dataArrays(t, data)
	require.Equal(t, 5, piece.NumberOfPoints)
	require.Equal(t, 2, piece.NumberOfCells)
	require.Equal(t, "0 1 2 3 1 2 3 4", arrays["connectivity"])
	require.Equal(t, "4 8", arrays["offsets"])
	require.Equal(t, "42 42", arrays["types"])
	require.Equal(t, "4 3 1 2 3 3 0 2 1 3 0 1 3 3 0 3 2 4 3 1 2 3 3 1 2 4 3 2 3 4 3 1 3 4", arrays["faces"])
	require.Equal(t, "17 34", arrays["faceoffsets"])
	require.Equal(t, "0 0 0 1 0 0 0 1 0 0 0 1 1 1 1", arrays["NodeCoordinates"])
}

func TestVTU_SaveWithoutCells(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{Positions: []r3.Vec{{}, {X: 1}, {Y: 1}}, FaceVertices: [][]int{{0, 1, 2}}}
	fsys := fsutil.NewMemory()
	_, err := Save(fsys, "soup.vtu", m)
	require.NoError(t, err)
	data, _ := fsys.Bytes("soup.vtu")
	piece, _ := dataArrays(t, data)
	require.Equal(t, 0, piece.NumberOfCells)
	require.Equal(t, 3, piece.NumberOfPoints)
}

func TestVTU_SaveBadCellFace(t *testing.T) {
	t.Parallel()

	m := twoTets()
	m.CellFaces[1][0] = 99
	_, err := Save(fsutil.NewMemory(), "x.vtu", m)
	require.ErrorIs(t, err, mesh.ErrFaceOutOfRange)
}

func TestVTU_LoadUnsupported(t *testing.T) {
	t.Parallel()

	_, ok, err := Load(fsutil.NewMemory(), "cells.vtu")
	require.True(t, ok)
	require.ErrorIs(t, err, ErrUnsupported)
}
