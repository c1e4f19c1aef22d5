package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmesh/dedup"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "pipeline.json", `{"merge_tolerance": 1e-9}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-9, cfg.GetMergeTolerance())
	assert.Equal(t, DefaultMergeVertices, cfg.GetMergeVertices())
	assert.Equal(t, DefaultDeriveTopology, cfg.GetDeriveTopology())
	assert.Equal(t, DefaultWorkers, cfg.GetWorkers())
}

func TestLoad_AllFields(t *testing.T) {
	path := writeFile(t, "pipeline.json", `{
		"merge_tolerance": 0,
		"merge_vertices": false,
		"derive_topology": false,
		"workers": 4
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.GetMergeTolerance())
	assert.False(t, cfg.GetMergeVertices())
	assert.False(t, cfg.GetDeriveTopology())
	assert.Equal(t, 4, cfg.GetWorkers())
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errPart string
	}{
		{"extension", "pipeline.yaml", `{}`, "extension"},
		{"bad json", "pipeline.json", `{`, "parse"},
		{"negative tolerance", "pipeline.json", `{"merge_tolerance": -1}`, "merge_tolerance"},
		{"zero workers", "pipeline.json", `{"workers": 0}`, "workers"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestGetters_NilConfig(t *testing.T) {
	var cfg *PipelineConfig
	assert.Equal(t, dedup.DefaultMergeTolerance, cfg.GetMergeTolerance())
	assert.True(t, cfg.GetMergeVertices())
	assert.Equal(t, 1, cfg.GetWorkers())
}

func TestValidate_NaN(t *testing.T) {
	cfg := &PipelineConfig{MergeTolerance: PtrFloat64(math.NaN())}
	require.Error(t, cfg.Validate())
	cfg = &PipelineConfig{Workers: PtrInt(2), MergeVertices: PtrBool(true)}
	require.NoError(t, cfg.Validate())
}
