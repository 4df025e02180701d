// Package intersection is a Boolean algebra for planar polygons given in
// face coordinates. Loops are implicitly closed, lie on z=0 and run
// clockwise when viewed from +z (outward normal along -z).
package intersection

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// kernelScale maps face coordinates to Boolean kernel units. With the usual
// tol of 0.01 merged vertices are at least 10 kernel units apart, well above
// the kernel's own rounding.
const kernelScale = 1000.0

// boundaryTol is the distance from the boundary that still counts as inside
const boundaryTol = 0.0001

// collinearEps is the largest offset of a vertex from the line through its
// neighbours that is still treated as exactly collinear
const collinearEps = 1e-8

func logger() *slog.Logger {
	return slog.Default().With("component", "intersection")
}

// pointMerger snaps vertices onto earlier vertices within tol. It lives for
// a single operation and must not be shared between calls.
type pointMerger struct {
	tol    float64
	points []geometry.Point3d
}

func newPointMerger(tol float64) *pointMerger {
	return &pointMerger{tol: tol}
}

// combine returns the first seen point within tol of p, remembering p if there is none
func (m *pointMerger) combine(p geometry.Point3d) geometry.Point3d {
	for _, q := range m.points {
		if p.IsAlmostEqual(q, m.tol) {
			return q
		}
	}
	m.points = append(m.points, p)
	return p
}

func (m *pointMerger) combineAll(points []geometry.Point3d) []geometry.Point3d {
	result := make([]geometry.Point3d, len(points))
	for i, p := range points {
		result[i] = m.combine(p)
	}
	return result
}

// ring converts a loop into a closed ring of merged vertices without repeats
func (m *pointMerger) ring(vertices []geometry.Point3d) orb.Ring {
	r := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		p := m.combine(v)
		q := orb.Point{p.X, p.Y}
		if len(r) > 0 && r[len(r)-1] == q {
			continue
		}
		r = append(r, q)
	}
	return closeRing(r)
}

// faceRing validates a clockwise face-coordinate loop and converts it to a ring
func (m *pointMerger) faceRing(vertices []geometry.Point3d) (orb.Ring, bool) {
	if len(vertices) < 3 {
		return nil, false
	}
	for _, v := range vertices {
		if math.Abs(v.Z) > m.tol {
			logger().Error("polygon is not in face coordinates", "z", v.Z)
			return nil, false
		}
	}
	normal, ok := geometry.GetOutwardNormal(vertices)
	if !ok {
		return nil, false
	}
	if normal.Z > 0 {
		logger().Error("polygon is not clockwise in face coordinates", "normal", normal.String())
		return nil, false
	}

	r := m.ring(vertices)
	if len(r) < 4 || math.Abs(ringArea(r)) <= m.tol*m.tol {
		return nil, false
	}
	return r, true
}

// closeRing appends the first point if the ring is open
func closeRing(r orb.Ring) orb.Ring {
	for len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	if len(r) == 0 {
		return r
	}
	return append(r, r[0])
}

// openPoints returns the ring vertices without the closing point
func openPoints(r orb.Ring) []orb.Point {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// ringArea is the signed shoelace area; negative for clockwise rings
func ringArea(r orb.Ring) float64 {
	points := openPoints(r)
	sum := 0.0
	for i := range points {
		p, q := points[i], points[(i+1)%len(points)]
		sum += p[0]*q[1] - q[0]*p[1]
	}
	return sum / 2
}

func polygonArea(p orb.Polygon) float64 {
	if len(p) == 0 {
		return 0
	}
	area := math.Abs(ringArea(p[0]))
	for _, hole := range p[1:] {
		area -= math.Abs(ringArea(hole))
	}
	return area
}

func reverseRing(r orb.Ring) orb.Ring {
	result := make(orb.Ring, len(r))
	for i, p := range r {
		result[len(r)-1-i] = p
	}
	return result
}

// clockwise orients r clockwise
func clockwise(r orb.Ring) orb.Ring {
	if r.Orientation() == orb.CCW {
		return reverseRing(r)
	}
	return r
}

// counterClockwise orients r counter-clockwise
func counterClockwise(r orb.Ring) orb.Ring {
	if r.Orientation() == orb.CW {
		return reverseRing(r)
	}
	return r
}

// normalize orients the outer ring clockwise and holes counter-clockwise
func normalize(p orb.Polygon) orb.Polygon {
	result := make(orb.Polygon, len(p))
	for i, r := range p {
		if i == 0 {
			result[i] = clockwise(r)
		} else {
			result[i] = counterClockwise(r)
		}
	}
	return result
}

// toPoints converts a ring back to an open face-coordinate loop
func toPoints(r orb.Ring) []geometry.Point3d {
	points := openPoints(r)
	result := make([]geometry.Point3d, len(points))
	for i, p := range points {
		result[i] = geometry.NewPoint3d(p[0], p[1], 0)
	}
	return result
}

// distanceToBoundary is the smallest distance from p to any edge of r
func distanceToBoundary(r orb.Ring, p orb.Point) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(r); i++ {
		best = math.Min(best, planar.DistanceFromSegment(r[i], r[i+1], p))
	}
	return best
}

// ringContains is boundary inclusive
func ringContains(r orb.Ring, p orb.Point) bool {
	return planar.RingContains(r, p) || distanceToBoundary(r, p) <= boundaryTol
}

// interiorPoint returns a point strictly inside r, just off its longest edge
func interiorPoint(r orb.Ring) orb.Point {
	points := openPoints(r)
	longest, length := 0, -1.0
	for i := range points {
		a, b := points[i], points[(i+1)%len(points)]
		if l := math.Hypot(b[0]-a[0], b[1]-a[1]); l > length {
			longest, length = i, l
		}
	}
	a, b := points[longest], points[(longest+1)%len(points)]
	mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}

	// interior is to the left of a counter-clockwise edge
	nx, ny := -(b[1]-a[1])/length, (b[0]-a[0])/length
	if ringArea(r) < 0 {
		nx, ny = -nx, -ny
	}
	step := 1e-6 * length
	return orb.Point{mid[0] + nx*step, mid[1] + ny*step}
}
