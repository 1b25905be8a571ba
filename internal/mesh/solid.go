// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mesh extrudes validated polygons into closed triangle meshes.
//
// Coordinates are right-handed and Y-up: the planar (x, z) of the polygon
// becomes (x, 0, z) on the bottom cap and (x, H, z) on the top cap. Every
// face is wound so its normal points out of the solid.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/flywave/go3d/float64/vec3"

	"github.com/pdiddy/geomesh/internal/geometry"
)

// ErrBadHeight is returned for a height that is not a positive finite number.
var ErrBadHeight = errors.New("extrude height must be positive")

// Face is a triangle given as zero-based indices into Solid.Vertices.
type Face [3]int

// Solid is a closed triangle mesh produced by Extrude.
type Solid struct {
	Vertices []vec3.T
	Faces    []Face
}

// Normal returns the unit normal of face i following its winding.
// A degenerate face yields the zero vector.
func (s *Solid) Normal(i int) vec3.T {
	f := s.Faces[i]
	ab := vec3.Sub(&s.Vertices[f[1]], &s.Vertices[f[0]])
	ac := vec3.Sub(&s.Vertices[f[2]], &s.Vertices[f[0]])
	n := vec3.Cross(&ab, &ac)
	return n.Normalized()
}

// Bounds returns the axis-aligned box of all vertices.
func (s *Solid) Bounds() vec3.Box {
	if len(s.Vertices) == 0 {
		return vec3.Box{}
	}
	box := vec3.Box{Min: s.Vertices[0], Max: s.Vertices[0]}
	for i := range s.Vertices[1:] {
		box.Extend(&s.Vertices[i+1])
	}
	return box
}

// Extrude sweeps p from y=0 to y=height. The result has 2*p.Len() vertices
// (bottom ring then top ring), both caps filled from one triangulation and
// two side triangles per polygon edge.
func Extrude(p *geometry.Polygon, height float64) (*Solid, error) {
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadHeight, height)
	}

	tris, err := geometry.Triangulate(p)
	if err != nil {
		return nil, err
	}

	pts := p.Vertices()
	n := len(pts)
	s := &Solid{
		Vertices: make([]vec3.T, 0, 2*n),
		Faces:    make([]Face, 0, 2*len(tris)+2*n),
	}
	for _, pt := range pts {
		s.Vertices = append(s.Vertices, vec3.T{pt[0], 0, pt[1]})
	}
	for _, pt := range pts {
		s.Vertices = append(s.Vertices, vec3.T{pt[0], height, pt[1]})
	}

	// A counter-clockwise (x, z) triangle lifted to (x, y, z) faces -Y, so
	// the bottom cap keeps the triangulation order and the top cap reverses it.
	for _, t := range tris {
		s.Faces = append(s.Faces, Face{t[0], t[1], t[2]})
	}
	for _, t := range tris {
		s.Faces = append(s.Faces, Face{n + t[0], n + t[2], n + t[1]})
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		bi, bj, ti, tj := i, j, n+i, n+j
		s.Faces = append(s.Faces, Face{bi, ti, tj}, Face{bi, tj, bj})
	}
	return s, nil
}
