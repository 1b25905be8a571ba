// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geometry validates planar rings and triangulates the resulting
// simple polygons. Points are (x, z) pairs stored as orb.Point.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// relTolerance scales with the polygon extent to absorb round-off from the
// projection.
const relTolerance = 1e-9

// Options controls validation.
type Options struct {
	// StrictOrientation rejects clockwise rings instead of reversing them.
	StrictOrientation bool
}

// Polygon is a validated simple polygon: at least three distinct vertices,
// non-zero area, no self-intersections, counter-clockwise, open (the first
// vertex is not repeated at the end). Build it with NewPolygon.
type Polygon struct {
	ring       orb.Ring
	area       float64
	bound      orb.Bound
	areaTol    float64
	reoriented bool
}

// NewPolygon builds a Polygon from a planar ring. The ring may be closed or
// open; consecutive duplicate vertices are dropped. Any violation is
// reported as an *InvalidPolygonError.
func NewPolygon(ring orb.Ring, opts Options) (*Polygon, error) {
	for i, pt := range ring {
		if !finite(pt[0]) || !finite(pt[1]) {
			return nil, invalid("vertex %d is not a finite number", i)
		}
	}

	pts := dedupe(ring)
	if len(pts) < 3 {
		return nil, invalid("fewer than 3 distinct vertices (%d)", len(pts))
	}

	bound := pts.Bound()
	extent := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	tol := relTolerance * math.Max(extent, 1)
	areaTol := tol * math.Max(extent, 1)

	if err := checkSimple(pts, tol); err != nil {
		return nil, err
	}

	closed := closeRing(pts)
	area := math.Abs(planar.Area(closed))
	if area <= areaTol {
		return nil, invalid("zero area")
	}

	p := &Polygon{ring: pts, area: area, bound: bound, areaTol: areaTol}
	if closed.Orientation() == orb.CW {
		if opts.StrictOrientation {
			return nil, invalid("exterior ring is clockwise")
		}
		pts.Reverse()
		p.reoriented = true
	}
	return p, nil
}

// Vertices returns the open counter-clockwise vertex list. Callers must not
// modify it.
func (p *Polygon) Vertices() []orb.Point {
	return p.ring
}

// Len returns the number of distinct vertices.
func (p *Polygon) Len() int {
	return len(p.ring)
}

// Area returns the absolute planar area.
func (p *Polygon) Area() float64 {
	return p.area
}

// Bound returns the planar bounding box.
func (p *Polygon) Bound() orb.Bound {
	return p.bound
}

// Reoriented reports whether a clockwise input ring was reversed.
func (p *Polygon) Reoriented() bool {
	return p.reoriented
}

// dedupe drops the closing vertex and consecutive duplicates.
func dedupe(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(ring))
	for _, pt := range ring {
		if len(out) > 0 && out[len(out)-1].Equal(pt) {
			continue
		}
		out = append(out, pt)
	}
	for len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func closeRing(pts orb.Ring) orb.Ring {
	closed := make(orb.Ring, len(pts), len(pts)+1)
	copy(closed, pts)
	return append(closed, pts[0])
}

// cross returns the z component of (b-a) x (c-a); positive when a, b, c turn
// counter-clockwise.
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func dist(a, b orb.Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
