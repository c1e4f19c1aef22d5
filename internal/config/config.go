// Package config loads the JSON pipeline configuration used by cmd/lvmesh.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/katalvlaran/lvmesh/dedup"
)

// Defaults used when a field is omitted from the JSON file.
const (
	DefaultMergeVertices  = true
	DefaultDeriveTopology = true
	DefaultWorkers        = 1
	maxWorkers            = 1024
	maxFileSize           = 1 << 20 // 1MB
)

// PipelineConfig is the root configuration. Nil fields fall back to the
// defaults above, so partial files are safe.
type PipelineConfig struct {
	MergeTolerance *float64 `json:"merge_tolerance,omitempty"`
	MergeVertices  *bool    `json:"merge_vertices,omitempty"`
	DeriveTopology *bool    `json:"derive_topology,omitempty"`
	Workers        *int     `json:"workers,omitempty"`
}

// Empty returns a PipelineConfig with every field unset.
func Empty() *PipelineConfig {
	return &PipelineConfig{}
}

// Load reads a PipelineConfig from a .json file no larger than 1MB.
func Load(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the set fields for nonsensical values. A nil config is valid.
func (c *PipelineConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.MergeTolerance != nil {
		eps := *c.MergeTolerance
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
			return fmt.Errorf("merge_tolerance must be finite and non-negative, got %v", eps)
		}
	}
	if c.Workers != nil && (*c.Workers < 1 || *c.Workers > maxWorkers) {
		return fmt.Errorf("workers must be in [1,%d], got %d", maxWorkers, *c.Workers)
	}
	return nil
}

// GetMergeTolerance returns the merge tolerance or dedup.DefaultMergeTolerance.
func (c *PipelineConfig) GetMergeTolerance() float64 {
	if c == nil || c.MergeTolerance == nil {
		return dedup.DefaultMergeTolerance
	}
	return *c.MergeTolerance
}

// GetMergeVertices reports whether coincident vertices should be merged.
func (c *PipelineConfig) GetMergeVertices() bool {
	if c == nil || c.MergeVertices == nil {
		return DefaultMergeVertices
	}
	return *c.MergeVertices
}

// GetDeriveTopology reports whether cell topology should be derived.
func (c *PipelineConfig) GetDeriveTopology() bool {
	if c == nil || c.DeriveTopology == nil {
		return DefaultDeriveTopology
	}
	return *c.DeriveTopology
}

// GetWorkers returns the number of goroutines for per-cell derivation.
func (c *PipelineConfig) GetWorkers() int {
	if c == nil || c.Workers == nil {
		return DefaultWorkers
	}
	return *c.Workers
}

// Helper functions to create pointers, used by flag overrides and tests.
func PtrFloat64(v float64) *float64 { return &v }
func PtrBool(v bool) *bool          { return &v }
func PtrInt(v int) *int             { return &v }
