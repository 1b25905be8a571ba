// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Validate when a configuration value is out
// of range. Callers treat it as fatal for the run.
var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults for the extrude stage. They match the values the runway meshes for
// the GSO scene were originally produced with.
const (
	DefaultInputPath     = "gsojosm.geojson"
	DefaultOutputDir     = "GSO_Runway_Meshes"
	DefaultExtrudeHeight = 1.0
	DefaultOriginLat     = 36.105
	DefaultOriginLon     = -79.940
	DefaultScaleFactor   = 111000.0
)

// LonScaleMode selects how longitude degrees are turned into metres.
type LonScaleMode string

const (
	// LonScaleFixed uses ScaleFactor for both axes.
	LonScaleFixed LonScaleMode = "fixed"
	// LonScaleCosine shrinks the longitude scale by cos(OriginLat).
	LonScaleCosine LonScaleMode = "cosine"
)

// MeshFormat identifies the mesh interchange format written per feature.
type MeshFormat string

const (
	FormatOBJ MeshFormat = "obj"
	FormatSTL MeshFormat = "stl"
)

// ProjectionConfig anchors the flat local projection.
type ProjectionConfig struct {
	// OriginLat and OriginLon are the geographic point mapped to (0, 0).
	OriginLat float64 `json:"origin_lat" yaml:"origin_lat" mapstructure:"origin_lat"`
	OriginLon float64 `json:"origin_lon" yaml:"origin_lon" mapstructure:"origin_lon"`

	// ScaleFactor is the approximate number of metres per degree (default 111000).
	ScaleFactor float64 `json:"scale_factor" yaml:"scale_factor" mapstructure:"scale_factor"`

	// LonScale selects fixed or cosine-corrected longitude scaling (default fixed).
	LonScale LonScaleMode `json:"lon_scale" yaml:"lon_scale" mapstructure:"lon_scale"`

	// OffsetX and OffsetZ translate the projected plane.
	OffsetX float64 `json:"offset_x" yaml:"offset_x" mapstructure:"offset_x"`
	OffsetZ float64 `json:"offset_z" yaml:"offset_z" mapstructure:"offset_z"`
}

// ExtrudeConfig holds every setting of a GeoJSON-to-mesh run. It is built
// once by the CLI and passed into the pipeline at construction time.
type ExtrudeConfig struct {
	ProjectionConfig `yaml:",inline" mapstructure:",squash"`

	// InputPath is the GeoJSON feature collection to read.
	InputPath string `json:"input_path" yaml:"input_path" mapstructure:"input_path"`

	// OutputDir receives one mesh file per exported feature. Created if missing.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// ExtrudeHeight is the solid height in metres. Must be positive.
	ExtrudeHeight float64 `json:"extrude_height" yaml:"extrude_height" mapstructure:"extrude_height"`

	// Format selects the mesh file format: obj or stl.
	Format MeshFormat `json:"format" yaml:"format" mapstructure:"format"`

	// StrictOrientation rejects clockwise exterior rings instead of reversing them.
	StrictOrientation bool `json:"strict_orientation" yaml:"strict_orientation" mapstructure:"strict_orientation"`

	// ManifestPath, when set, receives a YAML report of every feature result.
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest"`

	// CatalogPath, when set, is the SQLite mesh catalog updated after each export.
	CatalogPath string `json:"catalog,omitempty" yaml:"catalog,omitempty" mapstructure:"catalog"`
}

// DefaultExtrudeConfig returns the configuration used when nothing is overridden.
func DefaultExtrudeConfig() ExtrudeConfig {
	return ExtrudeConfig{
		ProjectionConfig: ProjectionConfig{
			OriginLat:   DefaultOriginLat,
			OriginLon:   DefaultOriginLon,
			ScaleFactor: DefaultScaleFactor,
			LonScale:    LonScaleFixed,
		},
		InputPath:     DefaultInputPath,
		OutputDir:     DefaultOutputDir,
		ExtrudeHeight: DefaultExtrudeHeight,
		Format:        FormatOBJ,
	}
}

// Validate checks the ranges the pipeline relies on.
func (c ExtrudeConfig) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidConfig)
	}
	if !finite(c.ExtrudeHeight) || c.ExtrudeHeight <= 0 {
		return fmt.Errorf("%w: extrude height must be a positive number, got %v", ErrInvalidConfig, c.ExtrudeHeight)
	}
	if !finite(c.ScaleFactor) || c.ScaleFactor <= 0 {
		return fmt.Errorf("%w: scale factor must be a positive number, got %v", ErrInvalidConfig, c.ScaleFactor)
	}
	if !finite(c.OriginLat) || c.OriginLat < -90 || c.OriginLat > 90 {
		return fmt.Errorf("%w: origin latitude %v out of range", ErrInvalidConfig, c.OriginLat)
	}
	if !finite(c.OriginLon) || c.OriginLon < -180 || c.OriginLon > 180 {
		return fmt.Errorf("%w: origin longitude %v out of range", ErrInvalidConfig, c.OriginLon)
	}
	if !finite(c.OffsetX) || !finite(c.OffsetZ) {
		return fmt.Errorf("%w: plane offsets must be finite", ErrInvalidConfig)
	}
	switch c.LonScale {
	case LonScaleFixed, LonScaleCosine, "":
	default:
		return fmt.Errorf("%w: unsupported lon_scale %q: use fixed or cosine", ErrInvalidConfig, c.LonScale)
	}
	switch c.Format {
	case FormatOBJ, FormatSTL:
	default:
		return fmt.Errorf("%w: unsupported format %q: use obj or stl", ErrInvalidConfig, c.Format)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CatalogConfig holds settings for querying the mesh catalog.
type CatalogConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of rows listed (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
