// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtrudeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ExtrudeConfig)
		wantErr bool
	}{
		{"defaults", func(*ExtrudeConfig) {}, false},
		{"stl", func(c *ExtrudeConfig) { c.Format = FormatSTL }, false},
		{"cosine", func(c *ExtrudeConfig) { c.LonScale = LonScaleCosine }, false},
		{"zero height", func(c *ExtrudeConfig) { c.ExtrudeHeight = 0 }, true},
		{"negative height", func(c *ExtrudeConfig) { c.ExtrudeHeight = -1 }, true},
		{"NaN height", func(c *ExtrudeConfig) { c.ExtrudeHeight = math.NaN() }, true},
		{"zero scale", func(c *ExtrudeConfig) { c.ScaleFactor = 0 }, true},
		{"latitude out of range", func(c *ExtrudeConfig) { c.OriginLat = 91 }, true},
		{"longitude out of range", func(c *ExtrudeConfig) { c.OriginLon = -181 }, true},
		{"infinite offset", func(c *ExtrudeConfig) { c.OffsetX = math.Inf(1) }, true},
		{"empty input", func(c *ExtrudeConfig) { c.InputPath = "" }, true},
		{"empty output", func(c *ExtrudeConfig) { c.OutputDir = "" }, true},
		{"unknown format", func(c *ExtrudeConfig) { c.Format = "gltf" }, true},
		{"unknown lon scale", func(c *ExtrudeConfig) { c.LonScale = "mercator" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultExtrudeConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultExtrudeConfig(t *testing.T) {
	cfg := DefaultExtrudeConfig()
	assert.Equal(t, "gsojosm.geojson", cfg.InputPath)
	assert.Equal(t, "GSO_Runway_Meshes", cfg.OutputDir)
	assert.Equal(t, 1.0, cfg.ExtrudeHeight)
	assert.Equal(t, 36.105, cfg.OriginLat)
	assert.Equal(t, -79.940, cfg.OriginLon)
	assert.Equal(t, 111000.0, cfg.ScaleFactor)
	assert.Equal(t, FormatOBJ, cfg.Format)
}
