// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geometry

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// edge is one ring segment stored in the R-tree.
type edge struct {
	index int
	a, b  orb.Point
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *edge) Bounds() rtreego.Rect {
	return e.rect
}

// edgeIndex finds candidate edge pairs whose padded bounding boxes overlap.
type edgeIndex struct {
	tree  *rtreego.Rtree
	edges []*edge
}

func newEdgeIndex(pts orb.Ring, tol float64) *edgeIndex {
	n := len(pts)
	idx := &edgeIndex{
		tree:  rtreego.NewTree(2, 25, 50),
		edges: make([]*edge, n),
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		e := &edge{index: i, a: a, b: b, rect: segmentRect(a, b, tol)}
		idx.edges[i] = e
		idx.tree.Insert(e)
	}
	return idx
}

// candidates returns the edges whose boxes intersect edge i's box.
func (x *edgeIndex) candidates(i int) []*edge {
	found := x.tree.SearchIntersect(x.edges[i].rect)
	out := make([]*edge, 0, len(found))
	for _, s := range found {
		out = append(out, s.(*edge))
	}
	return out
}

// segmentRect pads the segment's box by tol on every side; the R-tree
// rejects zero-length sides.
func segmentRect(a, b orb.Point, tol float64) rtreego.Rect {
	minX, maxX := math.Min(a[0], b[0]), math.Max(a[0], b[0])
	minY, maxY := math.Min(a[1], b[1]), math.Max(a[1], b[1])
	point := rtreego.Point{minX - tol, minY - tol}
	lengths := []float64{maxX - minX + 2*tol, maxY - minY + 2*tol}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// checkSimple reports the first pair of edges that touch or cross, other than
// neighbours meeting at their shared vertex.
func checkSimple(pts orb.Ring, tol float64) error {
	n := len(pts)
	idx := newEdgeIndex(pts, tol)

	for i := 0; i < n; i++ {
		for _, c := range idx.candidates(i) {
			j := c.index
			if j <= i {
				continue
			}
			e := idx.edges[i]
			if adjacent(i, j, n) {
				if folds(e, c, tol) {
					return invalid("self-intersection: edges %d and %d overlap", i, j)
				}
				continue
			}
			if segmentsIntersect(e.a, e.b, c.a, c.b, tol) {
				return invalid("self-intersection: edges %d and %d cross", i, j)
			}
		}
	}
	return nil
}

func adjacent(i, j, n int) bool {
	return j == i+1 || (i == 0 && j == n-1)
}

// folds reports whether two neighbouring edges run back over each other from
// their shared vertex (a spike).
func folds(e1, e2 *edge, tol float64) bool {
	var shared, p, q orb.Point
	switch {
	case e1.b.Equal(e2.a):
		shared, p, q = e1.b, e1.a, e2.b
	case e1.a.Equal(e2.b):
		shared, p, q = e1.a, e1.b, e2.a
	default:
		return false
	}
	if math.Abs(cross(shared, p, q)) > tol*(dist(shared, p)+dist(shared, q)) {
		return false
	}
	dot := (p[0]-shared[0])*(q[0]-shared[0]) + (p[1]-shared[1])*(q[1]-shared[1])
	return dot > 0
}

// segmentsIntersect reports whether segments ab and cd share any point.
func segmentsIntersect(a, b, c, d orb.Point, tol float64) bool {
	o1 := sign(cross(a, b, c), tol*dist(a, b))
	o2 := sign(cross(a, b, d), tol*dist(a, b))
	o3 := sign(cross(c, d, a), tol*dist(c, d))
	o4 := sign(cross(c, d, b), tol*dist(c, d))

	if o1 != o2 && o3 != o4 && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0 {
		return true
	}
	switch {
	case o1 == 0 && onSegment(a, b, c, tol):
		return true
	case o2 == 0 && onSegment(a, b, d, tol):
		return true
	case o3 == 0 && onSegment(c, d, a, tol):
		return true
	case o4 == 0 && onSegment(c, d, b, tol):
		return true
	}
	return false
}

// onSegment reports whether p, already known to be collinear with ab, lies
// within ab's extent.
func onSegment(a, b, p orb.Point, tol float64) bool {
	return p[0] >= math.Min(a[0], b[0])-tol && p[0] <= math.Max(a[0], b[0])+tol &&
		p[1] >= math.Min(a[1], b[1])-tol && p[1] <= math.Max(a[1], b[1])+tol
}

func sign(v, tol float64) int {
	switch {
	case v > tol:
		return 1
	case v < -tol:
		return -1
	default:
		return 0
	}
}
