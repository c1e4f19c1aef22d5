// SPDX-License-Identifier: MIT

package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/mesh"
)

const (
	stlHeaderSize = 80
	stlRecordSize = 50 // normal, three corners, attribute count
)

type stlAdapter struct {
	fsys fsutil.FileSystem
}

func (*stlAdapter) Format() Format { return STL }

// Load reads an ASCII or binary STL file. A file whose size matches the
// binary layout exactly is read as binary even when it starts with "solid".
func (a *stlAdapter) Load(path string) (*mesh.Mesh, error) {
	data, err := readFile(a.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	var m *mesh.Mesh
	if isBinarySTL(data) {
		m, err = parseBinarySTL(data)
	} else {
		m, err = parseASCIISTL(data)
	}
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}

	return m, nil
}

func isBinarySTL(data []byte) bool {
	if len(data) >= stlHeaderSize+4 {
		n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if int64(stlHeaderSize+4)+int64(n)*stlRecordSize == int64(len(data)) {
			return true
		}
	}

	return !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid"))
}

func parseBinarySTL(data []byte) (*mesh.Mesh, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, fmt.Errorf("binary header truncated: %w", ErrMalformed)
	}
	n := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	body := data[stlHeaderSize+4:]
	if len(body) < n*stlRecordSize {
		return nil, fmt.Errorf("%d facets declared, room for %d: %w", n, len(body)/stlRecordSize, ErrMalformed)
	}

	m := &mesh.Mesh{
		Positions:    make([]r3.Vec, 0, 3*n),
		FaceVertices: make([][]int, 0, n),
	}
	prog := logger.Progress("binary stl facets", progressStep)
	for t := 0; t < n; t++ {
		rec := body[t*stlRecordSize:]
		face := make([]int, 3)
		for k := 0; k < 3; k++ {
			// skip the 12-byte normal
			off := 12 + 12*k
			m.Positions = append(m.Positions, r3.Vec{
				X: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off:]))),
				Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off+4:]))),
				Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[off+8:]))),
			})
			face[k] = len(m.Positions) - 1
		}
		m.FaceVertices = append(m.FaceVertices, face)
		prog.Add(1)
	}
	prog.Done()

	return m, nil
}

func parseASCIISTL(data []byte) (*mesh.Mesh, error) {
	m := mesh.New()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	var face []int
	inFacet := false
	prog := logger.Progress("ascii stl facets", progressStep)
	for sc.Scan() {
		switch sc.Text() {
		case "facet":
			inFacet = true
			face = nil
		case "vertex":
			if !inFacet {
				return nil, fmt.Errorf("vertex outside facet: %w", ErrMalformed)
			}
			var p [3]float64
			for k := range p {
				if !sc.Scan() {
					return nil, fmt.Errorf("vertex truncated: %w", ErrMalformed)
				}
				v, err := strconv.ParseFloat(sc.Text(), 64)
				if err != nil {
					return nil, fmt.Errorf("vertex coordinate %q: %w", sc.Text(), ErrMalformed)
				}
				p[k] = v
			}
			m.Positions = append(m.Positions, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
			face = append(face, len(m.Positions)-1)
		case "endfacet":
			if len(face) < 3 {
				return nil, fmt.Errorf("facet %d has %d vertices: %w", len(m.FaceVertices), len(face), ErrMalformed)
			}
			m.FaceVertices = append(m.FaceVertices, face)
			inFacet = false
			prog.Add(1)
		case "endsolid":
			prog.Done()
			return m, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if inFacet {
		return nil, fmt.Errorf("unterminated facet: %w", ErrMalformed)
	}
	prog.Done()
	logger.Diagf("ascii stl without endsolid: %d facets", len(m.FaceVertices))

	return m, nil
}

// Save writes an ASCII STL. Faces with more than three vertices are split
// into a fan around their first vertex; faces with fewer are skipped.
func (a *stlAdapter) Save(path string, m *mesh.Mesh) error {
	if err := checkFaceVertices(m); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	err := writeFile(a.fsys, path, func(w *bufio.Writer) error {
		fmt.Fprintln(w, "solid lvmesh")
		for _, fv := range m.FaceVertices {
			for k := 1; k+1 < len(fv); k++ {
				p0, p1, p2 := m.Positions[fv[0]], m.Positions[fv[k]], m.Positions[fv[k+1]]
				n := triangleNormal(p0, p1, p2)
				fmt.Fprintf(w, "  facet normal %s\n    outer loop\n", fmtVec(n))
				for _, p := range [3]r3.Vec{p0, p1, p2} {
					fmt.Fprintf(w, "      vertex %s\n", fmtVec(p))
				}
				fmt.Fprint(w, "    endloop\n  endfacet\n")
			}
		}
		_, err := fmt.Fprintln(w, "endsolid lvmesh")
		return err
	})
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return nil
}

// triangleNormal returns the unit normal of (a, b, c), or the zero vector
// for a degenerate triangle.
func triangleNormal(a, b, c r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if l := r3.Norm(n); l > 0 {
		return r3.Scale(1/l, n)
	}

	return r3.Vec{}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fmtVec(p r3.Vec) string {
	return fmtFloat(p.X) + " " + fmtFloat(p.Y) + " " + fmtFloat(p.Z)
}

// checkFaceVertices rejects nil meshes and out-of-range face corners.
func checkFaceVertices(m *mesh.Mesh) error {
	if m == nil {
		return mesh.ErrNilMesh
	}
	nv := len(m.Positions)
	for f, fv := range m.FaceVertices {
		for _, v := range fv {
			if v < 0 || v >= nv {
				return fmt.Errorf("face %d vertex %d not in [0,%d): %w", f, v, nv, mesh.ErrVertexOutOfRange)
			}
		}
	}

	return nil
}
