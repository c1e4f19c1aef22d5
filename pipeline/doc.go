// SPDX-License-Identifier: MIT

// Package pipeline runs the lvmesh batch: load a mesh, derive cell
// topology, merge coincident vertices and save the result.
//
// Each stage is driven by a config.PipelineConfig. Missing adapters are not
// errors: Report.Loaded or Report.Saved stays false and the run stops or
// finishes quietly. The context is checked between stages.
package pipeline
