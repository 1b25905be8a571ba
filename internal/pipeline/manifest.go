// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geomesh/pkg/types"
)

// Manifest is the optional YAML report of a run.
type Manifest struct {
	RunID       string              `yaml:"run_id"`
	GeneratedAt time.Time           `yaml:"generated_at"`
	Config      types.ExtrudeConfig `yaml:"config"`
	Counts      ManifestCounts      `yaml:"counts"`
	Features    []Result            `yaml:"features"`
}

// ManifestCounts mirrors the batch summary line.
type ManifestCounts struct {
	Exported int `yaml:"exported"`
	Skipped  int `yaml:"skipped"`
	Invalid  int `yaml:"invalid"`
	Failed   int `yaml:"failed"`
	Total    int `yaml:"total"`
}

// NewManifest builds the manifest for a finished run.
func NewManifest(cfg types.ExtrudeConfig, s Summary, at time.Time) Manifest {
	return Manifest{
		RunID:       s.RunID,
		GeneratedAt: at.UTC(),
		Config:      cfg,
		Counts: ManifestCounts{
			Exported: s.Exported,
			Skipped:  s.Skipped,
			Invalid:  s.Invalid,
			Failed:   s.Failed,
			Total:    s.Total(),
		},
		Features: s.Results,
	}
}

// WriteManifest writes m as YAML to path, creating the parent directory.
func WriteManifest(path string, m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
