// SPDX-License-Identifier: MIT

package meshio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/topology"
)

var logger = meshlog.For("meshio")

// Format enumerates the supported file formats.
type Format int

const (
	// OpenFOAM is a polyMesh directory; selected by an empty extension.
	OpenFOAM Format = iota
	// STL is a stereolithography triangle soup.
	STL
	// OBJ is a Wavefront object file.
	OBJ
	// VTU is a VTK XML unstructured grid.
	VTU
	// SQLite is a snapshot archive database.
	SQLite
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case OpenFOAM:
		return "openfoam"
	case STL:
		return "stl"
	case OBJ:
		return "obj"
	case VTU:
		return "vtu"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// byExt maps lowercased extensions, dot included, to formats.
var byExt = map[string]Format{
	"":        OpenFOAM,
	".stl":    STL,
	".obj":    OBJ,
	".vtu":    VTU,
	".sqlite": SQLite,
	".db":     SQLite,
}

// Adapter loads and saves meshes in one format.
type Adapter interface {
	Format() Format
	Load(path string) (*mesh.Mesh, error)
	Save(path string, m *mesh.Mesh) error
}

// Option configures adapters returned by Open.
type Option func(*Options)

// Options holds adapter parameters.
type Options struct {
	// DeriveTopology controls whether cell relations are rebuilt after loading
	// a format that carries face→cells.
	DeriveTopology bool
	// Topology is forwarded to topology.Derive.
	Topology []topology.Option
}

// DefaultOptions derives topology with default topology options.
func DefaultOptions() Options {
	return Options{DeriveTopology: true}
}

func newOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithTopology forwards opts to topology derivation after load.
func WithTopology(opts ...topology.Option) Option {
	return func(o *Options) {
		o.DeriveTopology = true
		o.Topology = append(o.Topology, opts...)
	}
}

// WithoutTopology leaves cell relations empty after load.
func WithoutTopology() Option {
	return func(o *Options) { o.DeriveTopology = false }
}

// FormatFromPath returns the format selected by the extension of path's
// final element, compared case-insensitively. A path without extension
// selects OpenFOAM.
func FormatFromPath(path string) (Format, bool) {
	f, ok := byExt[strings.ToLower(filepath.Ext(path))]

	return f, ok
}

// Open returns the adapter for path. ok is false when the extension is unknown.
// SQLite archives always go to the operating system filesystem; fsys is used
// by every other format.
func Open(fsys fsutil.FileSystem, path string, opts ...Option) (Adapter, bool) {
	f, ok := FormatFromPath(path)
	if !ok {
		return nil, false
	}
	o := newOptions(opts)

	switch f {
	case OpenFOAM:
		return &foamAdapter{fsys: fsys, opts: o}, true
	case STL:
		return &stlAdapter{fsys: fsys}, true
	case OBJ:
		return &objAdapter{fsys: fsys}, true
	case VTU:
		return &vtuAdapter{fsys: fsys}, true
	case SQLite:
		return &sqliteAdapter{opts: o}, true
	}

	return nil, false
}

// Load opens the adapter for path and loads from it. ok reports whether an
// adapter exists; when it is false m is nil and err is nil.
func Load(fsys fsutil.FileSystem, path string, opts ...Option) (m *mesh.Mesh, ok bool, err error) {
	a, ok := Open(fsys, path, opts...)
	if !ok {
		logger.Opsf("no reader for %q", path)
		return nil, false, nil
	}
	m, err = a.Load(path)
	if err != nil {
		logger.Opsf("load %s %q failed: %v", a.Format(), path, err)
		return nil, true, err
	}
	st := m.Stats()
	logger.Opsf("loaded %s %q: %d vertices, %d faces, %d cells", a.Format(), path, st.Vertices, st.Faces, st.Cells)

	return m, true, nil
}

// Save opens the adapter for path and writes m to it. ok reports whether an
// adapter exists.
func Save(fsys fsutil.FileSystem, path string, m *mesh.Mesh, opts ...Option) (ok bool, err error) {
	a, ok := Open(fsys, path, opts...)
	if !ok {
		logger.Opsf("no writer for %q", path)
		return false, nil
	}
	if m == nil {
		return true, fmt.Errorf("Save: %w", mesh.ErrNilMesh)
	}
	if err = a.Save(path, m); err != nil {
		logger.Opsf("save %s %q failed: %v", a.Format(), path, err)
		return true, err
	}
	logger.Opsf("saved %s %q", a.Format(), path)

	return true, nil
}

// deriveAfterLoad rebuilds cell relations when o asks for it.
func deriveAfterLoad(m *mesh.Mesh, o Options) error {
	if !o.DeriveTopology {
		return nil
	}
	if _, err := topology.Derive(m, o.Topology...); err != nil {
		return err
	}

	return nil
}
