// SPDX-License-Identifier: MIT

// Command lvmesh loads a mesh, derives its cell topology, merges coincident
// vertices and writes the result in the format chosen by the output path.
//
//	lvmesh -in bunny.stl -out bunny.obj
//	lvmesh -in case/constant/polyMesh -out case.vtu -workers 8 -v
//	lvmesh -list archive.sqlite
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/katalvlaran/lvmesh/internal/config"
	"github.com/katalvlaran/lvmesh/internal/fsutil"
	"github.com/katalvlaran/lvmesh/internal/meshlog"
	"github.com/katalvlaran/lvmesh/meshio"
	"github.com/katalvlaran/lvmesh/pipeline"
)

var logger = meshlog.For("lvmesh")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("lvmesh: %v", err)
	}
}

// run parses args, applies flag overrides on top of the optional config file
// and executes the pipeline. Results go to stdout, logs to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fl := flag.NewFlagSet("lvmesh", flag.ContinueOnError)
	fl.SetOutput(stderr)
	in := fl.String("in", "", "input mesh path (directory for OpenFOAM)")
	out := fl.String("out", "", "output mesh path; empty skips writing")
	cfgPath := fl.String("config", "", "JSON pipeline config")
	tolerance := fl.Float64("tolerance", 0, "vertex merge tolerance (overrides config)")
	merge := fl.Bool("merge", config.DefaultMergeVertices, "merge coincident vertices (overrides config)")
	derive := fl.Bool("derive", config.DefaultDeriveTopology, "derive cell topology (overrides config)")
	workers := fl.Int("workers", 0, "goroutines for cell vertex derivation (overrides config)")
	list := fl.String("list", "", "list the snapshots of a SQLite archive and exit")
	verbose := fl.Bool("v", false, "enable diagnostic logging")
	trace := fl.Bool("vv", false, "enable diagnostic and trace logging")
	if err := fl.Parse(args); err != nil {
		return err
	}

	lw := meshlog.LogWriters{Ops: stderr}
	if *verbose || *trace {
		lw.Diag = stderr
	}
	if *trace {
		lw.Trace = stderr
	}
	meshlog.SetLogWriters(lw)

	if *list != "" {
		return listSnapshots(stdout, *list)
	}
	if *in == "" {
		fl.Usage()
		return fmt.Errorf("-in is required")
	}

	cfg := config.Empty()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	fl.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tolerance":
			cfg.MergeTolerance = config.PtrFloat64(*tolerance)
		case "merge":
			cfg.MergeVertices = config.PtrBool(*merge)
		case "derive":
			cfg.DeriveTopology = config.PtrBool(*derive)
		case "workers":
			cfg.Workers = config.PtrInt(*workers)
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	rep, err := pipeline.Run(ctx, fsutil.OS{}, cfg, *in, *out)
	if err != nil {
		return err
	}
	if !rep.Loaded {
		return fmt.Errorf("no reader for %q", *in)
	}
	if *out != "" && !rep.Saved {
		return fmt.Errorf("no writer for %q", *out)
	}

	fmt.Fprintf(stdout, "vertices %d (merged %d)\nfaces %d (boundary %d, internal %d)\ncells %d (topology %s)\n",
		rep.Stats.Vertices, rep.Merge.Merged(),
		rep.Stats.Faces, rep.Stats.BoundaryFaces, rep.Stats.InternalFaces,
		rep.Stats.Cells, rep.Topology)

	return nil
}

func listSnapshots(w io.Writer, path string) error {
	if f, ok := meshio.FormatFromPath(path); !ok || f != meshio.SQLite {
		return fmt.Errorf("%q is not a SQLite archive", path)
	}
	snaps, err := meshio.ListSnapshots(path)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		logger.Opsf("no snapshots in %q", path)
	}
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%d\t%d vertices\t%d faces\t%d cells\n",
			s.ID, s.CreatedAtNs, s.Stats.Vertices, s.Stats.Faces, s.Stats.Cells)
	}

	return nil
}
