// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunInfo describes one invocation of the extrude pipeline.
type RunInfo struct {
	// ID is a random UUID assigned when the pipeline is built.
	ID string `json:"id" yaml:"id"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`

	InputPath string `json:"input_path" yaml:"input_path"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	Exported int `json:"exported" yaml:"exported"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Invalid  int `json:"invalid" yaml:"invalid"`
	Failed   int `json:"failed" yaml:"failed"`
}

// MeshRecord describes one mesh file written by a run.
type MeshRecord struct {
	RunID        string     `json:"run_id" yaml:"run_id"`
	FeatureIndex int        `json:"feature_index" yaml:"feature_index"`
	FeatureName  string     `json:"feature_name" yaml:"feature_name"`
	Path         string     `json:"path" yaml:"path"`
	Format       MeshFormat `json:"format" yaml:"format"`
	Vertices     int        `json:"vertices" yaml:"vertices"`
	Faces        int        `json:"faces" yaml:"faces"`

	// MinX, MinZ, MaxX and MaxZ bound the footprint in projected metres.
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinZ float64 `json:"min_z" yaml:"min_z"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxZ float64 `json:"max_z" yaml:"max_z"`

	Height     float64   `json:"height" yaml:"height"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
}
