// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"
)

// queueItem pairs a vertex with its hop depth.
type queueItem struct {
	id    int
	depth int
}

// walker holds the mutable state of one walk.
type walker struct {
	adj     [][]int
	opts    BFSOptions
	queue   []queueItem
	visited []bool
	res     *BFSResult
}

// BFS walks adj breadth-first from start.
// Returns ErrAdjacencyNil or ErrStartOutOfRange for invalid input,
// ErrOptionViolation for bad options, ErrNeighborOutOfRange for a malformed
// row, the context error on cancellation, or the wrapped OnVisit error.
// On error the partial result is returned alongside it.
//
// A start already marked in a shared Visited set yields an empty result.
func BFS(adj [][]int, start int, opts ...Option) (*BFSResult, error) {
	if adj == nil {
		return nil, ErrAdjacencyNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.err != nil {
		return nil, o.err
	}
	n := len(adj)
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}
	visited := o.Visited
	if visited == nil {
		visited = make([]bool, n)
	} else if len(visited) != n {
		return nil, fmt.Errorf("%w: Visited has %d entries, adjacency %d", ErrOptionViolation, len(visited), n)
	}

	w := &walker{
		adj:     adj,
		opts:    o,
		visited: visited,
		res: &BFSResult{
			Start:  start,
			Depth:  make(map[int]int),
			Parent: make(map[int]int),
		},
	}
	if visited[start] {
		return w.res, nil
	}
	w.enqueue(start, 0, -1)

	return w.res, w.loop()
}

// enqueue marks id visited at depth d and records its parent (-1 for none).
func (w *walker) enqueue(id, d, parent int) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent >= 0 {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error or cancellation.
func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[head]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors applies MaxDepth and the filter, then enqueues each unseen
// neighbour of item.
func (w *walker) enqueueNeighbors(item queueItem) error {
	if w.opts.MaxDepth > 0 && item.depth >= w.opts.MaxDepth {
		return nil
	}
	for _, nbr := range w.adj[item.id] {
		if nbr < 0 || nbr >= len(w.adj) {
			return fmt.Errorf("%w: %d lists %d, want [0,%d)", ErrNeighborOutOfRange, item.id, nbr, len(w.adj))
		}
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		w.enqueue(nbr, item.depth+1, item.id)
	}

	return nil
}
