// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvmesh/bfs"
	"github.com/katalvlaran/lvmesh/mesh"
)

// CellNeighbors returns, for every cell, the sorted ids of the cells sharing
// an internal face with it. Two cells joined by several faces are listed once;
// a face whose owner and neighbour coincide is ignored.
//
// Returns (nil, Skipped, nil) when FaceCells is empty. m is never modified.
// Complexity: O(F + Σ deg log deg).
func CellNeighbors(m *mesh.Mesh) ([][]int, Status, error) {
	if m == nil {
		return nil, Skipped, fmt.Errorf("CellNeighbors: %w", ErrNilMesh)
	}
	if len(m.FaceCells) == 0 {
		return nil, Skipped, nil
	}
	if err := m.CheckFaceCells(); err != nil {
		return nil, Skipped, fmt.Errorf("CellNeighbors: %w", err)
	}

	adj := make([][]int, m.NumCells())
	for _, cs := range m.FaceCells {
		if len(cs) != 2 || cs[0] == cs[1] {
			continue
		}
		a, b := cs[0], cs[1]
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for c := range adj {
		slices.Sort(adj[c])
		adj[c] = slices.Compact(adj[c])
	}

	return adj, Derived, nil
}

// Regions labels every cell with the index of its connected region, where
// cells are connected through internal faces. Labels are assigned in order of
// each region's lowest cell id, starting at 0. The second result is the
// number of regions.
//
// Returns (nil, 0, Skipped, nil) when FaceCells is empty.
// Complexity: O(C + F) after CellNeighbors.
func Regions(m *mesh.Mesh) ([]int, int, Status, error) {
	adj, st, err := CellNeighbors(m)
	if err != nil {
		return nil, 0, st, fmt.Errorf("Regions: %w", err)
	}
	if st == Skipped {
		return nil, 0, Skipped, nil
	}

	label := make([]int, len(adj))
	seen := make([]bool, len(adj))
	count := 0
	for start := range adj {
		if seen[start] {
			continue
		}
		region := count
		if _, err := bfs.BFS(adj, start, bfs.WithVisited(seen), bfs.WithOnVisit(func(c, _ int) error {
			label[c] = region
			return nil
		})); err != nil {
			return nil, 0, Skipped, fmt.Errorf("Regions: %w", err)
		}
		count++
	}

	return label, count, Derived, nil
}

// CellPath returns a path of cells from one cell to another crossing the
// fewest internal faces, both ends included. It returns bfs.ErrNotReached
// when the cells lie in different regions and ErrCellOutOfRange when either
// id is not a cell of m.
func CellPath(m *mesh.Mesh, from, to int) ([]int, error) {
	adj, st, err := CellNeighbors(m)
	if err != nil {
		return nil, fmt.Errorf("CellPath: %w", err)
	}
	nc := len(adj)
	if st == Skipped || from < 0 || from >= nc || to < 0 || to >= nc {
		return nil, fmt.Errorf("CellPath: cells %d, %d not in [0,%d): %w", from, to, nc, ErrCellOutOfRange)
	}
	res, err := bfs.BFS(adj, from)
	if err != nil {
		return nil, fmt.Errorf("CellPath: %w", err)
	}
	path, err := res.PathTo(to)
	if err != nil {
		return nil, fmt.Errorf("CellPath: %w", err)
	}

	return path, nil
}
