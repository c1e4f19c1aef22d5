// SPDX-License-Identifier: MIT

// Package meshio reads and writes mesh.Mesh values in the formats lvmesh
// understands and picks the right one from a path.
//
// Formats:
//
//   - OpenFOAM polyMesh directory (no extension): points, faces, owner,
//     neighbour. Cell topology is derived after load.
//   - STL (.stl): ASCII and binary load, ASCII save. Polygons are fan
//     triangulated on save.
//   - OBJ (.obj): vertex and face records, 1-based, negative indices allowed.
//   - VTU (.vtu): VTK UnstructuredGrid of polyhedron cells. Save only.
//   - SQLite (.sqlite, .db): snapshot archive; load returns the latest
//     snapshot.
//
// Dispatch never fails: an unknown extension yields ok == false and no
// Adapter. A capability a format lacks returns ErrUnsupported. Savers never
// modify the mesh they are given.
//
// STL and OBJ loaders emit one position per corner reference as it appears
// in the file; coincident corners are merged later by
// mesh.MergeCoincidentVertices.
package meshio
