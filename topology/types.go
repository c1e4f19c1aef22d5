// SPDX-License-Identifier: MIT

package topology

import (
	"errors"
	"runtime"
)

// Status distinguishes a derivation that ran from one that had nothing to do.
type Status int

const (
	// Skipped means a required input relation was empty; the mesh is unchanged.
	Skipped Status = iota
	// Derived means the output relation was rebuilt and assigned.
	Derived
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Derived:
		return "derived"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Sentinel errors for topology derivation.
var (
	// ErrNilMesh indicates a nil *mesh.Mesh was passed.
	ErrNilMesh = errors.New("topology: mesh is nil")

	// ErrCellOutOfRange indicates a cell id outside the mesh.
	ErrCellOutOfRange = errors.New("topology: cell out of range")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("topology: invalid option supplied")
)

// Option configures derivation.
type Option func(*Options)

// Options holds derivation parameters.
type Options struct {
	// Workers is the number of goroutines used for per-cell work (>= 1).
	Workers int

	err error
}

// DefaultOptions returns single-threaded derivation.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

// WithWorkers sets the per-cell goroutine count. n <= 0 is recorded as
// ErrOptionViolation and surfaced when the derivation is invoked.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = ErrOptionViolation
			return
		}
		o.Workers = n
	}
}

// WithAllCPUs uses GOMAXPROCS workers.
func WithAllCPUs() Option {
	return func(o *Options) { o.Workers = runtime.GOMAXPROCS(0) }
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o, o.err
}
