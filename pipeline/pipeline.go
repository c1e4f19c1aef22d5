// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/lvmesh/dedup"
	"github.com/katalvlaran/lvmesh/internal/config"
	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/mesh"
	"github.com/katalvlaran/lvmesh/meshio"
	"github.com/katalvlaran/lvmesh/topology"
)

var logger = meshlog.For("pipeline")

// Report summarises one Run.
type Report struct {
	Input, Output string
	// Loaded is false when no reader matches Input.
	Loaded bool
	// Topology is the status of the post-load derivation.
	Topology topology.Status
	// Merge is the zero value when merging is disabled or nothing loaded.
	Merge mesh.MergeReport
	// Saved is false when Output is empty or no writer matches it.
	Saved bool
	// Stats describes the mesh as saved.
	Stats    mesh.Stats
	Duration time.Duration
}

// Run executes the batch on in and writes the result to out. An empty out
// skips the save stage. cfg may be nil.
//
// Topology is derived by this stage, not by the reader, so the worker count
// in cfg applies to every format. Derivation runs before merging because
// merging preserves every relation already present.
func Run(ctx context.Context, fsys fsutil.FileSystem, cfg *config.PipelineConfig, in, out string) (Report, error) {
	start := time.Now()
	rep := Report{Input: in, Output: out}
	if err := cfg.Validate(); err != nil {
		return rep, fmt.Errorf("Run: %w", err)
	}

	m, ok, err := meshio.Load(fsys, in, meshio.WithoutTopology())
	if err != nil {
		return rep, fmt.Errorf("Run: %w", err)
	}
	if !ok {
		rep.Duration = time.Since(start)
		return rep, nil
	}
	rep.Loaded = true

	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("Run: %w", err)
	}
	if cfg.GetDeriveTopology() {
		rep.Topology, err = topology.Derive(m, topology.WithWorkers(cfg.GetWorkers()))
		if err != nil {
			return rep, fmt.Errorf("Run: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("Run: %w", err)
	}
	if cfg.GetMergeVertices() {
		rep.Merge, err = mesh.MergeCoincidentVertices(m, dedup.WithTolerance(cfg.GetMergeTolerance()))
		if err != nil {
			return rep, fmt.Errorf("Run: %w", err)
		}
	}
	rep.Stats = m.Stats()

	if out == "" {
		rep.Duration = time.Since(start)
		return rep, nil
	}
	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("Run: %w", err)
	}
	rep.Saved, err = meshio.Save(fsys, out, m)
	if err != nil {
		return rep, fmt.Errorf("Run: %w", err)
	}
	rep.Duration = time.Since(start)
	logger.Diagf("pipeline %q -> %q: topology %s, %d -> %d vertices in %s",
		in, out, rep.Topology, rep.Merge.Before, rep.Merge.After, rep.Duration)

	return rep, nil
}
