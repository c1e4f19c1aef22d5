// Package lvmesh turns polygon soups and polyhedral meshes into indexed,
// topologically complete meshes.
//
// What lvmesh does:
//
//	• Topology: face→cells becomes cell→faces, then cell→vertices
//	• Vertex welding: tolerant sort-unique-reindex of positions, with every
//	  index relation rewritten through the forwarding map
//	• Permutations: in-place apply, invert, remap and bulk erase
//	• Formats: OpenFOAM polyMesh, STL, OBJ, VTU and a SQLite archive
//
// Packages:
//
//	geomkey/   exact ordering and tolerant equality of coordinate keys
//	permute/   permutation and forwarding-map utilities
//	dedup/     generic sort-unique-reindex engine
//	mesh/      the Mesh container, validation and vertex merging
//	topology/  cell relation derivation, neighbours, regions and paths
//	bfs/       breadth-first walks over integer adjacency
//	meshio/    format adapters and extension dispatch
//	pipeline/  load → derive → merge → save batch
//
// A quick run from the command line:
//
//	go run ./cmd/lvmesh -in bunny.stl -out bunny.obj -v
//
// Everything is synchronous; a *mesh.Mesh is owned by one caller at a time.
// Only cell→vertex derivation fans out over goroutines, and only when asked.
package lvmesh
