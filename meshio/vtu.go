// SPDX-License-Identifier: MIT

package meshio

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/topology"
)

// vtkPolyhedron is the VTK cell type id for arbitrary polyhedra.
const vtkPolyhedron = 42

type vtuAdapter struct {
	fsys fsutil.FileSystem
}

func (*vtuAdapter) Format() Format { return VTU }

func (*vtuAdapter) Load(string) (*mesh.Mesh, error) {
	return nil, fmt.Errorf("Load: %s: %w", VTU, ErrUnsupported)
}

type vtkFile struct {
	XMLName    xml.Name `xml:"VTKFile"`
	Type       string   `xml:"type,attr"`
	Version    string   `xml:"version,attr"`
	ByteOrder  string   `xml:"byte_order,attr"`
	HeaderType string   `xml:"header_type,attr"`
	Grid       vtkGrid  `xml:"UnstructuredGrid"`
}

type vtkGrid struct {
	Piece vtkPiece `xml:"Piece"`
}

type vtkPiece struct {
	NumberOfPoints int       `xml:"NumberOfPoints,attr"`
	NumberOfCells  int       `xml:"NumberOfCells,attr"`
	PointData      struct{}  `xml:"PointData"`
	CellData       struct{}  `xml:"CellData"`
	Points         vtkArrays `xml:"Points"`
	Cells          vtkArrays `xml:"Cells"`
}

type vtkArrays struct {
	Arrays []vtkDataArray `xml:"DataArray"`
}

type vtkDataArray struct {
	Type       string `xml:"type,attr"`
	IDType     int    `xml:"IdType,attr,omitempty"`
	Name       string `xml:"Name,attr"`
	Components int    `xml:"NumberOfComponents,attr,omitempty"`
	Format     string `xml:"format,attr"`
	Data       string `xml:",chardata"`
}

// Save writes every cell as a VTK polyhedron. Cell vertices are derived on a
// copy when m does not carry them.
func (a *vtuAdapter) Save(path string, m *mesh.Mesh) error {
	if err := checkFaceVertices(m); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if len(m.CellVertices) != len(m.CellFaces) {
		c := m.Clone()
		if _, err := topology.DeriveCellVertices(c); err != nil {
			return fmt.Errorf("Save: %w", err)
		}
		m = c
	}
	if len(m.CellVertices) != len(m.CellFaces) {
		return fmt.Errorf("Save: %d cell vertex rows for %d cells: %w", len(m.CellVertices), len(m.CellFaces), ErrMissingRelation)
	}
	nf := len(m.FaceVertices)
	for c, fs := range m.CellFaces {
		for _, f := range fs {
			if f < 0 || f >= nf {
				return fmt.Errorf("Save: cell %d face %d not in [0,%d): %w", c, f, nf, mesh.ErrFaceOutOfRange)
			}
		}
	}

	doc := vtkFile{
		Type:       "UnstructuredGrid",
		Version:    "1.0",
		ByteOrder:  "LittleEndian",
		HeaderType: "UInt64",
		Grid:       vtkGrid{Piece: buildPiece(m)},
	}
	err := writeFile(a.fsys, path, func(w *bufio.Writer) error {
		w.WriteString(xml.Header)
		enc := xml.NewEncoder(w)
		enc.Indent("", " ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return w.WriteByte('\n')
	})
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return nil
}

// buildPiece lays out points, connectivity, offsets, types, faces and
// faceoffsets. A faces block is the face count followed by, per face, its
// vertex count and vertices; faceoffsets holds the running end of each block.
func buildPiece(m *mesh.Mesh) vtkPiece {
	var pts strings.Builder
	for _, p := range m.Positions {
		pts.WriteString(fmtVec(p))
		pts.WriteByte('\n')
	}

	var conn, offs, types, faces, faceOffs strings.Builder
	end, faceEnd := 0, 0
	for c, vs := range m.CellVertices {
		conn.WriteString(joinInts(vs, " "))
		conn.WriteByte('\n')
		end += len(vs)
		appendInt(&offs, end)
		appendInt(&types, vtkPolyhedron)

		fs := m.CellFaces[c]
		faces.WriteString(strconv.Itoa(len(fs)))
		faces.WriteByte('\n')
		faceEnd += 1 + len(fs)
		for _, f := range fs {
			fv := m.FaceVertices[f]
			faces.WriteString(strconv.Itoa(len(fv)))
			faces.WriteByte(' ')
			faces.WriteString(joinInts(fv, " "))
			faces.WriteByte('\n')
			faceEnd += len(fv)
		}
		appendInt(&faceOffs, faceEnd)
	}

	return vtkPiece{
		NumberOfPoints: len(m.Positions),
		NumberOfCells:  len(m.CellVertices),
		Points: vtkArrays{Arrays: []vtkDataArray{
			{Type: "Float64", Name: "NodeCoordinates", Components: 3, Format: "ascii", Data: pts.String()},
		}},
		Cells: vtkArrays{Arrays: []vtkDataArray{
			{Type: "Int64", Name: "connectivity", Format: "ascii", Data: conn.String()},
			{Type: "Int64", Name: "offsets", Format: "ascii", Data: offs.String()},
			{Type: "UInt8", Name: "types", Format: "ascii", Data: types.String()},
			{Type: "Int64", IDType: 1, Name: "faces", Format: "ascii", Data: faces.String()},
			{Type: "Int64", IDType: 1, Name: "faceoffsets", Format: "ascii", Data: faceOffs.String()},
		}},
	}
}

func appendInt(b *strings.Builder, v int) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(strconv.Itoa(v))
}
