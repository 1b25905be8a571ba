// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package project

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/geomesh/pkg/types"
)

const eps = 1e-6

func defaultProjection() types.ProjectionConfig {
	return types.DefaultExtrudeConfig().ProjectionConfig
}

func TestProject(t *testing.T) {
	tests := []struct {
		name         string
		lat, lon     float64
		wantX, wantZ float64
	}{
		{name: "origin maps to zero", lat: 36.105, lon: -79.940, wantX: 0, wantZ: 0},
		{name: "one millidegree east", lat: 36.105, lon: -79.939, wantX: 111, wantZ: 0},
		{name: "one millidegree south", lat: 36.104, lon: -79.940, wantX: 0, wantZ: -111},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, z := Project(tt.lat, tt.lon, types.DefaultOriginLat, types.DefaultOriginLon, types.DefaultScaleFactor)
			assert.InDelta(t, tt.wantX, x, eps)
			assert.InDelta(t, tt.wantZ, z, eps)
		})
	}
}

func TestProjector_Deterministic(t *testing.T) {
	p := New(defaultProjection())

	x1, z1 := p.Project(36.11, -79.95)
	x2, z2 := p.Project(36.11, -79.95)
	assert.Equal(t, x1, x2)
	assert.Equal(t, z1, z2)
}

func TestProjector_Affine(t *testing.T) {
	cfg := defaultProjection()
	p := New(cfg)

	dLat, dLon := 0.002, -0.003
	x1, z1 := p.Project(cfg.OriginLat+dLat, cfg.OriginLon+dLon)
	for _, s := range []float64{-2, 0.5, 3, 10} {
		xs, zs := p.Project(cfg.OriginLat+s*dLat, cfg.OriginLon+s*dLon)
		assert.InDelta(t, s*x1, xs, eps, "x scales with the offset (s=%v)", s)
		assert.InDelta(t, s*z1, zs, eps, "z scales with the offset (s=%v)", s)
	}
}

func TestProjector_MatchesPureFunction(t *testing.T) {
	cfg := types.ProjectionConfig{OriginLat: 10, OriginLon: 20, ScaleFactor: 1000, LonScale: types.LonScaleFixed}
	p := New(cfg)

	x, z := p.Project(10.5, 19.25)
	wx, wz := Project(10.5, 19.25, 10, 20, 1000)
	assert.Equal(t, wx, x)
	assert.Equal(t, wz, z)
}

func TestProjector_CosineAndOffset(t *testing.T) {
	cfg := types.ProjectionConfig{
		OriginLat:   60,
		OriginLon:   0,
		ScaleFactor: 100000,
		LonScale:    types.LonScaleCosine,
		OffsetX:     5,
		OffsetZ:     -5,
	}
	p := New(cfg)

	x, z := p.Project(60, 1)
	assert.InDelta(t, 100000*math.Cos(math.Pi/3)+5, x, eps)
	assert.InDelta(t, -5, z, eps)
}

func TestProjector_ZeroScaleUsesDefault(t *testing.T) {
	p := New(types.ProjectionConfig{})
	x, _ := p.Project(0, 1)
	assert.InDelta(t, types.DefaultScaleFactor, x, eps)
}

func TestProjectRing(t *testing.T) {
	p := New(types.ProjectionConfig{ScaleFactor: 10})
	ring := []orb.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	got, err := p.ProjectRing(ring)
	require.NoError(t, err)
	assert.Equal(t, orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, got)
	assert.Equal(t, orb.Point{0, 1}, ring[1], "input is untouched")
}

func TestProjectRing_NonNumeric(t *testing.T) {
	p := New(defaultProjection())
	_, err := p.ProjectRing([]orb.Point{{0, 0}, {math.NaN(), 1}, {1, math.Inf(1)}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonNumeric))
}
