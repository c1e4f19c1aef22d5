// SPDX-License-Identifier: MIT

package dedup

import "math"

// DefaultMergeTolerance is the absolute distance, per coordinate, under which
// two keys are considered the same point. It is larger than
// geomkey.DefaultEpsilon to absorb decimal round-trips in text formats.
const DefaultMergeTolerance = 1e-12

const panicToleranceInvalid = "dedup: WithTolerance: eps must be finite, non-negative"

// Option configures SortUnique.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; use WithX.
type Options struct {
	eps float64
}

// WithTolerance sets the absolute merge tolerance.
// Panics when eps is NaN, ±Inf or negative (programmer error).
func WithTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// Tolerance returns the configured merge tolerance.
func (o Options) Tolerance() float64 { return o.eps }

// NewOptions resolves opts left to right over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{eps: DefaultMergeTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
