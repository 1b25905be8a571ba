// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package project maps geographic coordinates onto a local planar X/Z system
// with an equirectangular approximation anchored at a configured origin.
// The mapping is only meaningful for small areas around the origin.
package project

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/pdiddy/geomesh/pkg/types"
)

// ErrNonNumeric is returned when a coordinate is NaN or infinite.
var ErrNonNumeric = errors.New("non-numeric coordinate")

// Project applies x = (lon - originLon) * k, z = (lat - originLat) * k.
func Project(lat, lon, originLat, originLon, k float64) (x, z float64) {
	return (lon - originLon) * k, (lat - originLat) * k
}

// Projector holds the origin and scales of one run.
type Projector struct {
	originLat float64
	originLon float64
	lonScale  float64
	latScale  float64
	offsetX   float64
	offsetZ   float64
}

// New builds a Projector from cfg. A zero ScaleFactor falls back to the
// default; LonScaleCosine multiplies the longitude scale by cos(OriginLat).
func New(cfg types.ProjectionConfig) *Projector {
	k := cfg.ScaleFactor
	if k == 0 {
		k = types.DefaultScaleFactor
	}
	lonK := k
	if cfg.LonScale == types.LonScaleCosine {
		lonK = k * math.Cos(cfg.OriginLat*math.Pi/180)
	}
	return &Projector{
		originLat: cfg.OriginLat,
		originLon: cfg.OriginLon,
		lonScale:  lonK,
		latScale:  k,
		offsetX:   cfg.OffsetX,
		offsetZ:   cfg.OffsetZ,
	}
}

// Project maps one latitude/longitude pair to planar x/z metres.
func (p *Projector) Project(lat, lon float64) (x, z float64) {
	x = (lon-p.originLon)*p.lonScale + p.offsetX
	z = (lat-p.originLat)*p.latScale + p.offsetZ
	return x, z
}

// ProjectRing maps a ring of (longitude, latitude) points to a planar ring
// whose points hold (x, z). The input is not modified.
func (p *Projector) ProjectRing(ring []orb.Point) (orb.Ring, error) {
	out := make(orb.Ring, len(ring))
	for i, pt := range ring {
		lon, lat := pt.Lon(), pt.Lat()
		if !finite(lon) || !finite(lat) {
			return nil, fmt.Errorf("%w: vertex %d (%v, %v)", ErrNonNumeric, i, lon, lat)
		}
		x, z := p.Project(lat, lon)
		out[i] = orb.Point{x, z}
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
