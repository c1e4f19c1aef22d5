// SPDX-License-Identifier: MIT

// Package bfs walks an integer adjacency list breadth-first, returning
// unweighted hop distances, parent links and visit order.
//
// What
//
//   - Vertices are the ids 0..len(adj)-1; adj[v] lists the neighbours of v.
//   - BFS explores from one start vertex in non-decreasing hop distance and
//     returns a BFSResult with Order, Depth and Parent.
//   - OnVisit is called once per vertex and may abort the walk with an error.
//   - WithFilterNeighbor prunes individual edges; WithMaxDepth bounds the walk.
//   - WithVisited shares one visited bitmap across several walks, so labelling
//     every component of a graph costs O(V + E) in total.
//
// Determinism
//
//	Neighbours are enqueued in the order adj lists them. Callers that want a
//	reproducible visit order sort each row first (topology.CellNeighbors does).
//
// Complexity (V = len(adj), E = Σ len(adj[v]))
//
//   - Time:   O(V + E) for the vertices reachable from start
//   - Memory: O(V) for the queue, Depth, Parent and visited set
//
// Usage
//
//	res, err := bfs.BFS(adj, 0,
//	    bfs.WithContext(ctx),
//	    bfs.WithMaxDepth(3),
//	    bfs.WithOnVisit(func(id, depth int) error { return nil }),
//	)
//	path, err := res.PathTo(7)
package bfs
