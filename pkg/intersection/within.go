package intersection

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// WithinPoint reports whether point lies inside or on the boundary of a
// clockwise face-coordinate polygon
func WithinPoint(point geometry.Point3d, polygon []geometry.Point3d, tol float64) bool {
	m := newPointMerger(tol)
	r, ok := m.faceRing(polygon)
	if !ok {
		return false
	}
	p := m.combine(point)
	return ringContains(r, orb.Point{p.X, p.Y})
}

// Within reports whether every vertex of polygon1 lies inside or on polygon2.
// Both loops are clockwise in face coordinates.
func Within(polygon1, polygon2 []geometry.Point3d, tol float64) bool {
	m := newPointMerger(tol)
	r2, ok := m.faceRing(polygon2)
	if !ok {
		return false
	}
	r1, ok := m.faceRing(polygon1)
	if !ok {
		return false
	}
	for _, p := range openPoints(r1) {
		if !ringContains(r2, p) {
			return false
		}
	}
	return true
}

// SelfIntersects reports whether two non-adjacent edges of the loop touch or cross
func SelfIntersects(polygon []geometry.Point3d, tol float64) bool {
	m := newPointMerger(tol)
	return selfIntersects(m.ring(polygon))
}

func selfIntersects(r orb.Ring) bool {
	points := openPoints(r)
	n := len(points)
	if n < 4 {
		return false
	}
	seen := make(map[orb.Point]bool, n)
	for _, p := range points {
		if seen[p] {
			return true
		}
		seen[p] = true
	}
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			c, d := points[j], points[(j+1)%n]
			if _, _, ok := segmentIntersection(a, b, c, d); ok {
				return true
			}
			if onSegment(c, a, b) || onSegment(d, a, b) || onSegment(a, c, d) || onSegment(b, c, d) {
				return true
			}
		}
	}
	return false
}

func onSegment(p, a, b orb.Point) bool {
	return planar.DistanceFromSegment(a, b, p) <= collinearEps
}

// segmentIntersection returns the parameters of the crossing of ab and cd.
// Parallel segments never cross.
func segmentIntersection(a, b, c, d orb.Point) (float64, float64, bool) {
	rx, ry := b[0]-a[0], b[1]-a[1]
	sx, sy := d[0]-c[0], d[1]-c[1]
	denom := rx*sy - ry*sx
	if math.Abs(denom) <= 1e-15*math.Hypot(rx, ry)*math.Hypot(sx, sy) {
		return 0, 0, false
	}
	qx, qy := c[0]-a[0], c[1]-a[1]
	s := (qx*sy - qy*sx) / denom
	t := (qx*ry - qy*rx) / denom
	const eps = 1e-12
	if s < -eps || s > 1+eps || t < -eps || t > 1+eps {
		return 0, 0, false
	}
	return math.Max(0, math.Min(1, s)), math.Max(0, math.Min(1, t)), true
}
