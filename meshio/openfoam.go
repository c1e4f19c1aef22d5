// SPDX-License-Identifier: MIT

package meshio

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/mesh"
)

// polyMesh file names inside an OpenFOAM mesh directory.
const (
	foamPoints    = "points"
	foamFaces     = "faces"
	foamOwner     = "owner"
	foamNeighbour = "neighbour"
)

type foamAdapter struct {
	fsys fsutil.FileSystem
	opts Options
}

func (*foamAdapter) Format() Format { return OpenFOAM }

// Load reads points, faces, owner and neighbour from the directory dir.
// A negative neighbour entry leaves its face on the boundary. Cell relations
// are derived afterwards unless disabled with WithoutTopology.
func (a *foamAdapter) Load(dir string) (*mesh.Mesh, error) {
	m := mesh.New()

	toks, err := a.tokens(dir, foamPoints)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if m.Positions, err = toks.points(); err != nil {
		return nil, fmt.Errorf("Load: %s: %w", foamPoints, err)
	}

	if toks, err = a.tokens(dir, foamFaces); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if m.FaceVertices, err = toks.faces(); err != nil {
		return nil, fmt.Errorf("Load: %s: %w", foamFaces, err)
	}

	if toks, err = a.tokens(dir, foamOwner); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	owner, err := toks.labels()
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", foamOwner, err)
	}
	if len(owner) != len(m.FaceVertices) {
		return nil, fmt.Errorf("Load: %d owners for %d faces: %w", len(owner), len(m.FaceVertices), ErrMalformed)
	}

	if toks, err = a.tokens(dir, foamNeighbour); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	neighbour, err := toks.labels()
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", foamNeighbour, err)
	}
	if len(neighbour) > len(owner) {
		return nil, fmt.Errorf("Load: %d neighbours for %d faces: %w", len(neighbour), len(owner), ErrMalformed)
	}

	m.FaceCells = make([][]int, len(owner))
	for f, c := range owner {
		m.FaceCells[f] = []int{c}
		if f < len(neighbour) && neighbour[f] >= 0 {
			m.FaceCells[f] = append(m.FaceCells[f], neighbour[f])
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if err := deriveAfterLoad(m, a.opts); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	return m, nil
}

func (a *foamAdapter) tokens(dir, name string) (*foamTokens, error) {
	data, err := readFile(a.fsys, filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	t := &foamTokens{toks: tokenizeFoam(string(data))}
	t.skipHeader()
	logger.Tracef("openfoam %s: %d tokens", name, len(t.toks))

	return t, nil
}

// foamTokens walks the token stream of one polyMesh file.
type foamTokens struct {
	toks []string
	i    int
}

// tokenizeFoam splits s on whitespace and makes each bracket, brace and
// semicolon its own token. Line and block comments are dropped.
func tokenizeFoam(s string) []string {
	var out []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			out = append(out, s[start:end])
			start = -1
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			flush(i)
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			flush(i)
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return out
			}
			i += end + 3
		case c == '(' || c == ')' || c == '{' || c == '}' || c == ';':
			flush(i)
			out = append(out, s[i:i+1])
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))

	return out
}

// skipHeader moves past a leading "FoamFile { ... }" dictionary.
func (t *foamTokens) skipHeader() {
	if t.i >= len(t.toks) || t.toks[t.i] != "FoamFile" {
		return
	}
	depth := 0
	for t.i++; t.i < len(t.toks); t.i++ {
		switch t.toks[t.i] {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				t.i++
				return
			}
		}
	}
}

func (t *foamTokens) next() (string, error) {
	if t.i >= len(t.toks) {
		return "", fmt.Errorf("unexpected end of file: %w", ErrMalformed)
	}
	tok := t.toks[t.i]
	t.i++

	return tok, nil
}

func (t *foamTokens) expect(want string) error {
	tok, err := t.next()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("got %q, want %q: %w", tok, want, ErrMalformed)
	}

	return nil
}

func (t *foamTokens) label() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("label %q: %w", tok, ErrMalformed)
	}

	return v, nil
}

func (t *foamTokens) scalar() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("scalar %q: %w", tok, ErrMalformed)
	}

	return v, nil
}

// list reads "N ( item... )" calling item N times.
func (t *foamTokens) list(item func() error) (int, error) {
	n, err := t.label()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("list size %d: %w", n, ErrMalformed)
	}
	if err := t.expect("("); err != nil {
		return 0, err
	}
	for k := 0; k < n; k++ {
		if err := item(); err != nil {
			return 0, fmt.Errorf("item %d: %w", k, err)
		}
	}
	if err := t.expect(")"); err != nil {
		return 0, err
	}

	return n, nil
}

func (t *foamTokens) points() ([]r3.Vec, error) {
	var pts []r3.Vec
	prog := logger.Progress("openfoam points", progressStep)
	defer prog.Done()
	_, err := t.list(func() error {
		if err := t.expect("("); err != nil {
			return err
		}
		var p [3]float64
		for k := range p {
			v, err := t.scalar()
			if err != nil {
				return err
			}
			p[k] = v
		}
		pts = append(pts, r3.Vec{X: p[0], Y: p[1], Z: p[2]})
		prog.Add(1)
		return t.expect(")")
	})

	return pts, err
}

func (t *foamTokens) faces() ([][]int, error) {
	var faces [][]int
	prog := logger.Progress("openfoam faces", progressStep)
	defer prog.Done()
	_, err := t.list(func() error {
		face := []int{}
		_, err := t.list(func() error {
			v, err := t.label()
			face = append(face, v)
			return err
		})
		faces = append(faces, face)
		prog.Add(1)
		return err
	})

	return faces, err
}

func (t *foamTokens) labels() ([]int, error) {
	var out []int
	_, err := t.list(func() error {
		v, err := t.label()
		out = append(out, v)
		return err
	})

	return out, err
}

// Save writes the four polyMesh files into dir. The neighbour list extends
// to the last internal face; boundary faces before it are written as -1.
func (a *foamAdapter) Save(dir string, m *mesh.Mesh) error {
	if err := checkFaceVertices(m); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if len(m.FaceCells) != len(m.FaceVertices) {
		return fmt.Errorf("Save: %d face cell rows for %d faces: %w", len(m.FaceCells), len(m.FaceVertices), ErrMissingRelation)
	}
	if err := m.CheckFaceCells(); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	owner := make([]int, len(m.FaceCells))
	nInternal := 0
	for f, cs := range m.FaceCells {
		owner[f] = cs[0]
		if len(cs) == 2 {
			nInternal = f + 1
		}
	}
	neighbour := make([]int, nInternal)
	for f := range neighbour {
		neighbour[f] = -1
		if cs := m.FaceCells[f]; len(cs) == 2 {
			neighbour[f] = cs[1]
		}
	}

	files := []struct {
		name, class string
		body        func(w *bufio.Writer)
	}{
		{foamPoints, "vectorField", func(w *bufio.Writer) {
			fmt.Fprintf(w, "%d\n(\n", len(m.Positions))
			for _, p := range m.Positions {
				fmt.Fprintf(w, "(%s)\n", fmtVec(p))
			}
			w.WriteString(")\n")
		}},
		{foamFaces, "faceList", func(w *bufio.Writer) {
			fmt.Fprintf(w, "%d\n(\n", len(m.FaceVertices))
			for _, fv := range m.FaceVertices {
				fmt.Fprintf(w, "%d(%s)\n", len(fv), joinInts(fv, " "))
			}
			w.WriteString(")\n")
		}},
		{foamOwner, "labelList", func(w *bufio.Writer) { writeLabels(w, owner) }},
		{foamNeighbour, "labelList", func(w *bufio.Writer) { writeLabels(w, neighbour) }},
	}
	for _, f := range files {
		err := writeFile(a.fsys, filepath.Join(dir, f.name), func(w *bufio.Writer) error {
			writeFoamHeader(w, f.class, f.name)
			f.body(w)
			return nil
		})
		if err != nil {
			return fmt.Errorf("Save: %s: %w", f.name, err)
		}
	}

	return nil
}

func writeFoamHeader(w *bufio.Writer, class, object string) {
	fmt.Fprintf(w, "FoamFile\n{\n    version     2.0;\n    format      ascii;\n    class       %s;\n    location    \"constant/polyMesh\";\n    object      %s;\n}\n\n", class, object)
}

func writeLabels(w *bufio.Writer, ls []int) {
	fmt.Fprintf(w, "%d\n(\n", len(ls))
	for _, v := range ls {
		w.WriteString(strconv.Itoa(v))
		w.WriteByte('\n')
	}
	w.WriteString(")\n")
}

func joinInts(vs []int, sep string) string {
	var b strings.Builder
	for k, v := range vs {
		if k > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}
