// Package triangulate splits planar polygons with holes into triangles and
// convex pieces. Outer rings are processed counter-clockwise and holes
// clockwise; inputs of either winding are accepted and reoriented.
package triangulate

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

var (
	// ErrDegenerate is returned for rings with fewer than 3 distinct points or no net area
	ErrDegenerate = errors.New("triangulate: polygon has no area")
	// ErrNoEar is returned when ear clipping stalls on a malformed polygon
	ErrNoEar = errors.New("triangulate: no ear found")
	// ErrBridge is returned when a hole cannot be connected to the outer ring
	ErrBridge = errors.New("triangulate: hole cannot be bridged")
	// ErrMonotone is returned when the sweep cannot partition the polygon
	ErrMonotone = errors.New("triangulate: monotone partition failed")
)

// Triangle is a counter-clockwise triangle
type Triangle [3]orb.Point

// Area returns the (positive) area of the triangle
func (t Triangle) Area() float64 {
	return cross(t[0], t[1], t[2]) / 2
}

// Ring returns the triangle as a closed ring
func (t Triangle) Ring() orb.Ring {
	return orb.Ring{t[0], t[1], t[2], t[0]}
}

// Triangulate tries ear clipping first and falls back to a monotone
// partition. The triangle areas always sum to the net polygon area.
func Triangulate(outer orb.Ring, holes []orb.Ring) ([]Triangle, error) {
	o, hs, eps, err := prepare(outer, holes)
	if err != nil {
		return nil, err
	}
	net := signedArea(o)
	for _, h := range hs {
		net += signedArea(h)
	}

	triangles, err := earClip(o, hs, eps)
	if err == nil && areaMatches(triangles, net) {
		return triangles, nil
	}

	triangles, err = monotone(o, hs, eps)
	if err != nil {
		return nil, err
	}
	if !areaMatches(triangles, net) {
		return nil, ErrMonotone
	}
	return triangles, nil
}

// EarClip triangulates by ear clipping after bridging every hole into the outer ring
func EarClip(outer orb.Ring, holes []orb.Ring) ([]Triangle, error) {
	o, hs, eps, err := prepare(outer, holes)
	if err != nil {
		return nil, err
	}
	return earClip(o, hs, eps)
}

// Monotone triangulates by sweeping the polygon into y-monotone pieces
func Monotone(outer orb.Ring, holes []orb.Ring) ([]Triangle, error) {
	o, hs, eps, err := prepare(outer, holes)
	if err != nil {
		return nil, err
	}
	return monotone(o, hs, eps)
}

func areaMatches(triangles []Triangle, net float64) bool {
	sum := 0.0
	for _, t := range triangles {
		sum += t.Area()
	}
	return math.Abs(sum-net) <= 1e-6*math.Max(1, math.Abs(net))
}

// prepare opens and orients the rings and derives an area epsilon from the extent
func prepare(outer orb.Ring, holes []orb.Ring) ([]orb.Point, [][]orb.Point, float64, error) {
	o := clean(outer)
	if len(o) < 3 {
		return nil, nil, 0, ErrDegenerate
	}
	if signedArea(o) < 0 {
		reverse(o)
	}

	bound := orb.MultiPoint(o).Bound()
	size := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	eps := 1e-12 * size * size

	var hs [][]orb.Point
	net := signedArea(o)
	for _, hole := range holes {
		h := clean(hole)
		if len(h) < 3 {
			continue
		}
		if signedArea(h) > 0 {
			reverse(h)
		}
		if math.Abs(signedArea(h)) <= eps {
			continue
		}
		net += signedArea(h)
		hs = append(hs, h)
	}
	if signedArea(o) <= eps || net <= eps {
		return nil, nil, 0, ErrDegenerate
	}
	return o, hs, eps, nil
}

// clean drops the closing point and consecutive duplicates
func clean(r orb.Ring) []orb.Point {
	result := make([]orb.Point, 0, len(r))
	for _, p := range r {
		if len(result) > 0 && result[len(result)-1] == p {
			continue
		}
		result = append(result, p)
	}
	for len(result) > 1 && result[0] == result[len(result)-1] {
		result = result[:len(result)-1]
	}
	return result
}

func reverse(points []orb.Point) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

func signedArea(points []orb.Point) float64 {
	sum := 0.0
	for i := range points {
		p, q := points[i], points[(i+1)%len(points)]
		sum += p[0]*q[1] - q[0]*p[1]
	}
	return sum / 2
}

// cross is twice the signed area of a, b, c; positive for a left turn
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// inTriangle reports whether p lies inside or on the counter-clockwise triangle a, b, c
func inTriangle(p, a, b, c orb.Point, eps float64) bool {
	return cross(a, b, p) >= -eps && cross(b, c, p) >= -eps && cross(c, a, p) >= -eps
}

// newTriangle orients a, b, c counter-clockwise; false if the triangle has no area
func newTriangle(a, b, c orb.Point, eps float64) (Triangle, bool) {
	area := cross(a, b, c)
	if math.Abs(area) <= eps {
		return Triangle{}, false
	}
	if area < 0 {
		return Triangle{a, c, b}, true
	}
	return Triangle{a, b, c}, true
}
