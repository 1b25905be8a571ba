// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geometry

import (
	"fmt"
	"math"

	"github.com/skelterjohn/geom"
)

// Triangulate fills the polygon interior with Len()-2 triangles by
// recursive diagonal splitting. Triangles index into p.Vertices() and keep
// the counter-clockwise winding of the ring. The result is checked to cover
// the polygon area exactly once.
func Triangulate(p *Polygon) ([][3]int, error) {
	pts := p.ring
	n := len(pts)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrTriangulation, n)
	}

	var gp geom.Polygon
	index := make(map[geom.Coord]int, n)
	for i, pt := range pts {
		c := geom.Coord{X: pt[0], Y: pt[1]}
		index[c] = i
		gp.AddVertex(c)
	}

	gtris, ok := gp.Triangles()
	if !ok {
		return nil, fmt.Errorf("%w: no diagonal splits the %d-vertex ring", ErrTriangulation, n)
	}
	if len(gtris) != n-2 {
		return nil, fmt.Errorf("%w: got %d triangles for %d vertices", ErrTriangulation, len(gtris), n)
	}

	tris := make([][3]int, 0, len(gtris))
	covered := 0.0
	for _, gt := range gtris {
		var tri [3]int
		for k, c := range [3]geom.Coord{gt.A, gt.B, gt.C} {
			i, found := index[c]
			if !found {
				return nil, fmt.Errorf("%w: corner (%v, %v) is not a ring vertex", ErrTriangulation, c.X, c.Y)
			}
			tri[k] = i
		}
		c := cross(pts[tri[0]], pts[tri[1]], pts[tri[2]])
		if c < -p.areaTol {
			return nil, fmt.Errorf("%w: triangle %v is clockwise", ErrTriangulation, tri)
		}
		covered += c / 2
		tris = append(tris, tri)
	}

	if math.Abs(covered-p.area) > math.Max(p.areaTol, p.area*relTolerance)*float64(n) {
		return nil, fmt.Errorf("%w: triangles cover %v of area %v", ErrTriangulation, covered, p.area)
	}
	return tris, nil
}
