// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the geomesh pipeline:
// loaded feature records, per-feature export status and the run configuration.
package types

import "github.com/paulmach/orb"

// GeometryPolygon is the only GeoJSON geometry type the pipeline extrudes.
const GeometryPolygon = "Polygon"

// FeatureRecord is one named entity read from the input collection.
// It is created once by the loader and never modified afterwards.
type FeatureRecord struct {
	// Index is the zero-based position of the feature in the collection.
	Index int `json:"index" yaml:"index"`

	// Name comes from properties.name, or Feature_<Index> when absent.
	Name string `json:"name" yaml:"name"`

	// GeometryType is the GeoJSON type name, or "" for a feature without geometry.
	GeometryType string `json:"geometry_type" yaml:"geometry_type"`

	// Ring is the exterior ring as (longitude, latitude) points. Empty unless
	// GeometryType is Polygon. Holes are not kept.
	Ring []orb.Point `json:"ring,omitempty" yaml:"ring,omitempty"`

	// DecodeError is set when the feature itself could not be decoded. Name
	// and GeometryType are then best effort and Ring is empty.
	DecodeError string `json:"decode_error,omitempty" yaml:"decode_error,omitempty"`
}

// IsPolygon reports whether the record carries polygon geometry.
func (f FeatureRecord) IsPolygon() bool {
	return f.GeometryType == GeometryPolygon
}

// ExportStatus is the terminal state of one feature in a run.
type ExportStatus string

const (
	// ExportDone means a mesh file was written.
	ExportDone ExportStatus = "exported"
	// ExportSkipped means the geometry type is not supported.
	ExportSkipped ExportStatus = "skipped"
	// ExportInvalid means the polygon failed validation and never reached extrusion.
	ExportInvalid ExportStatus = "invalid"
	// ExportFailed means extrusion, triangulation or the file write failed.
	ExportFailed ExportStatus = "failed"
)
