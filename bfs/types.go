// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrAdjacencyNil is returned when BFS is given a nil adjacency list.
	ErrAdjacencyNil = errors.New("bfs: adjacency is nil")

	// ErrStartOutOfRange is returned when the start id is not in [0, len(adj)).
	ErrStartOutOfRange = errors.New("bfs: start vertex out of range")

	// ErrNeighborOutOfRange is returned when a row of adj names a vertex
	// outside [0, len(adj)).
	ErrNeighborOutOfRange = errors.New("bfs: neighbor out of range")

	// ErrNotReached is returned by PathTo for a vertex the walk never entered.
	ErrNotReached = errors.New("bfs: vertex not reached")

	// ErrOptionViolation is returned when an Option is given an invalid value.
	ErrOptionViolation = errors.New("bfs: option violation")
)

// Option configures a BFS run.
type Option func(*BFSOptions)

// BFSOptions holds the parameters of one BFS run.
type BFSOptions struct {
	// Ctx cancels the walk; checked once per dequeued vertex.
	Ctx context.Context

	// OnVisit is called when a vertex is dequeued. A non-nil error aborts.
	OnVisit func(id, depth int) error

	// MaxDepth stops expansion beyond this many hops; 0 means no limit.
	MaxDepth int

	// FilterNeighbor reports whether the edge curr→nbr may be followed.
	FilterNeighbor func(curr, nbr int) bool

	// Visited, when non-nil, is read and updated in place instead of a fresh
	// per-call set. Vertices already marked are never entered.
	Visited []bool

	err error
}

// DefaultOptions returns options with no-op hooks, no depth limit and a
// background context.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:            context.Background(),
		OnVisit:        func(int, int) error { return nil },
		FilterNeighbor: func(int, int) bool { return true },
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers fn as the visit hook.
func WithOnVisit(fn func(id, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the walk to d hops from start. Negative d is rejected.
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor registers an edge filter.
func WithFilterNeighbor(fn func(curr, nbr int) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// WithVisited shares seen across calls. len(seen) must equal len(adj); BFS
// reports ErrOptionViolation otherwise.
func WithVisited(seen []bool) Option {
	return func(o *BFSOptions) {
		if seen == nil {
			o.err = fmt.Errorf("%w: Visited cannot be nil", ErrOptionViolation)
			return
		}
		o.Visited = seen
	}
}

// BFSResult is the outcome of one walk.
type BFSResult struct {
	Start  int         // start vertex
	Order  []int       // vertices in visit order
	Depth  map[int]int // vertex → hops from Start
	Parent map[int]int // vertex → predecessor in the BFS tree; Start has none
}

// PathTo returns the vertices of a fewest-hop path from Start to dest,
// inclusive, or ErrNotReached when the walk never entered dest.
func (r *BFSResult) PathTo(dest int) ([]int, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("%w: %d from %d", ErrNotReached, dest, r.Start)
	}
	path := make([]int, 0, r.Depth[dest]+1)
	for v := dest; ; {
		path = append(path, v)
		p, ok := r.Parent[v]
		if !ok {
			break
		}
		v = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
