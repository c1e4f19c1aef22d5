package meshio_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/meshio"
)

const asciiSTL = `solid cube_corner
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 0
    endloop
  endfacet
endsolid cube_corner
`

func TestSTL_LoadASCII(t *testing.T) {
	t.Parallel()

	fsys := fsutil.NewMemory()
	fsys.Put("corner.stl", []byte(asciiSTL))

	m, ok, err := meshio.Load(fsys, "corner.stl")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, m.Positions, 6, "one position per corner reference")
	require.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, m.FaceVertices)
	require.Equal(t, r3.Vec{Z: 1}, m.Positions[4])
	require.Empty(t, m.FaceCells)
}

// binarySTL encodes tris as a binary STL; header is copied into the
// 80-byte header field.
func binarySTL(header string, tris [][3]r3.Vec) []byte {
	var buf bytes.Buffer
	h := make([]byte, 80)
	copy(h, header)
	buf.Write(h)
	binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		rec := make([]float32, 12)
		for k, p := range tri {
			rec[3+3*k], rec[4+3*k], rec[5+3*k] = float32(p.X), float32(p.Y), float32(p.Z)
		}
		binary.Write(&buf, binary.LittleEndian, rec)
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}

	return buf.Bytes()
}

func TestSTL_LoadBinary(t *testing.T) {
	t.Parallel()

	tris := [][3]r3.Vec{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
	}
	for _, header := range []string{"binary export", "solid but actually binary"} {
		fsys := fsutil.NewMemory()
		fsys.Put("quad.STL", binarySTL(header, tris))

		m, ok, err := meshio.Load(fsys, "quad.STL")
		require.NoError(t, err, header)
		require.True(t, ok)
		require.Len(t, m.Positions, 6)
		require.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, m.FaceVertices)
		require.Equal(t, r3.Vec{X: 1, Y: 1}, m.Positions[4])
	}
}

func TestSTL_LoadMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad coordinate": "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 zero\n",
		"short facet":    "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid x\n",
		"unterminated":   "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\n",
	}
	for name, src := range cases {
		fsys := fsutil.NewMemory()
		fsys.Put("bad.stl", []byte(src))
		_, _, err := meshio.Load(fsys, "bad.stl")
		require.ErrorIs(t, err, meshio.ErrMalformed, name)
	}

	fsys := fsutil.NewMemory()
	truncated := binarySTL("x", [][3]r3.Vec{{}, {}})
	fsys.Put("short.stl", truncated[:len(truncated)-10])
	_, _, err := meshio.Load(fsys, "short.stl")
	require.ErrorIs(t, err, meshio.ErrMalformed)
}

func TestSTL_SaveFanTriangulates(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{
		Positions:    []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		FaceVertices: [][]int{{0, 1, 2, 3}, {0, 1}},
	}
	before := m.Clone()
	fsys := fsutil.NewMemory()
	ok, err := meshio.Save(fsys, "quad.stl", m)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, before, m)

	data, _ := fsys.Bytes("quad.stl")
	text := string(data)
	require.Equal(t, 2, strings.Count(text, "endfacet"), "quad splits into two triangles, segment is dropped")
	require.Equal(t, 2, strings.Count(text, "facet normal 0 0 1"))

	back, _, err := meshio.Load(fsys, "quad.stl")
	require.NoError(t, err)
	require.Len(t, back.FaceVertices, 2)
	require.Equal(t, m.Positions[2], back.Positions[2])
	require.Equal(t, m.Positions[3], back.Positions[5])
}

func TestSTL_SaveRejectsDanglingIndex(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{Positions: []r3.Vec{{}}, FaceVertices: [][]int{{0, 1, 2}}}
	_, err := meshio.Save(fsutil.NewMemory(), "x.stl", m)
	require.ErrorIs(t, err, mesh.ErrVertexOutOfRange)
}

func TestSTL_DegenerateNormalIsZero(t *testing.T) {
	t.Parallel()

	m := &mesh.Mesh{
		Positions:    []r3.Vec{{}, {X: 1}, {X: 2}},
		FaceVertices: [][]int{{0, 1, 2}},
	}
	fsys := fsutil.NewMemory()
	_, err := meshio.Save(fsys, "line.stl", m)
	require.NoError(t, err)
	data, _ := fsys.Bytes("line.stl")
	require.Contains(t, string(data), "facet normal 0 0 0")
	require.NotContains(t, string(data), "NaN")
}

// Not parallel: swaps the process-wide log writers.
func TestSTL_TraceReportsParseProgress(t *testing.T) {
	var ops, trace bytes.Buffer
	meshlog.SetLogWriters(meshlog.LogWriters{Ops: &ops, Trace: &trace})
	t.Cleanup(func() { meshlog.SetLogWriters(meshlog.LogWriters{Ops: os.Stderr}) })

	fsys := fsutil.NewMemory()
	fsys.Put("corner.stl", []byte(asciiSTL))
	_, _, err := meshio.Load(fsys, "corner.stl")
	require.NoError(t, err)

	require.Contains(t, trace.String(), "meshio: ascii stl facets: 2 (done)")
	require.Contains(t, ops.String(), `meshio: loaded stl "corner.stl"`)
}
