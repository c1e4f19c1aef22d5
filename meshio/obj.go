// SPDX-License-Identifier: MIT

package meshio

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/mesh"
)

type objAdapter struct {
	fsys fsutil.FileSystem
}

func (*objAdapter) Format() Format { return OBJ }

// Load reads "v" and "f" records. Face tokens may carry texture and normal
// references ("3/1/2", "3//2"); only the vertex part is used. A negative
// index counts back from the last vertex read so far. Other records are
// ignored.
func (a *objAdapter) Load(path string) (*mesh.Mesh, error) {
	data, err := readFile(a.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	m, err := parseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}

	return m, nil
}

func parseOBJ(data []byte) (*mesh.Mesh, error) {
	m := mesh.New()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	prog := logger.Progress("obj lines", progressStep)
	for sc.Scan() {
		line++
		prog.Add(1)
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates: %w", line, ErrMalformed)
			}
			var p [3]float64
			for k := range p {
				v, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: coordinate %q: %w", line, fields[k+1], ErrMalformed)
				}
				p[k] = v
			}
			m.Positions = append(m.Positions, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs 3 vertices: %w", line, ErrMalformed)
			}
			face := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				v, err := objIndex(tok, len(m.Positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				face = append(face, v)
			}
			m.FaceVertices = append(m.FaceVertices, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	prog.Done()
	logger.Tracef("obj: %d vertices, %d faces", len(m.Positions), len(m.FaceVertices))

	return m, nil
}

// objIndex converts a face token to a 0-based vertex index given nv vertices
// read so far.
func objIndex(tok string, nv int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	i, err := strconv.Atoi(tok)
	if err != nil || i == 0 {
		return 0, fmt.Errorf("face index %q: %w", tok, ErrMalformed)
	}
	if i < 0 {
		i += nv
	} else {
		i--
	}
	if i < 0 || i >= nv {
		return 0, fmt.Errorf("face index %q with %d vertices: %w", tok, nv, mesh.ErrVertexOutOfRange)
	}

	return i, nil
}

// Save writes one "v" record per position and one 1-based "f" record per
// face, keeping every polygon vertex.
func (a *objAdapter) Save(path string, m *mesh.Mesh) error {
	if err := checkFaceVertices(m); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	err := writeFile(a.fsys, path, func(w *bufio.Writer) error {
		for _, p := range m.Positions {
			fmt.Fprintf(w, "v %s\n", fmtVec(p))
		}
		for _, fv := range m.FaceVertices {
			w.WriteString("f")
			for _, v := range fv {
				w.WriteByte(' ')
				w.WriteString(strconv.Itoa(v + 1))
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return nil
}
