package intersection

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// Simplify cleans a face-coordinate loop: near-duplicate vertices are merged,
// zero-width spikes removed and the result starts at the upper-left corner.
//
// With removeCollinear every non-turning vertex is dropped. Otherwise exactly
// collinear vertices are removed and every merged input vertex that lies on
// the outline is threaded back in, so the result refines the original outline.
// The winding of the input is kept. Returns nil for degenerate input.
func Simplify(vertices []geometry.Point3d, removeCollinear bool, tol float64) []geometry.Point3d {
	if len(vertices) < 3 {
		return nil
	}
	for _, v := range vertices {
		if math.Abs(v.Z) > tol {
			logger().Error("simplify: polygon is not in face coordinates", "z", v.Z)
			return nil
		}
	}
	normal, ok := geometry.GetOutwardNormal(vertices)
	if !ok {
		return nil
	}
	reversed := normal.Z > 0
	work := vertices
	if reversed {
		work = geometry.Reverse(vertices)
	}

	m := newPointMerger(tol)
	r := removeSpikeVertices(m.ring(work))
	if len(r) < 4 {
		return nil
	}

	if removeCollinear {
		r = removeCollinearVertices(r, tol)
	} else {
		r = simplify.DouglasPeucker(0).Ring(r)
		r = removeCollinearStart(r)
		r = rethread(r, m.points, tol)
	}
	if len(r) < 4 || math.Abs(ringArea(r)) <= tol*tol {
		return nil
	}

	result := toPoints(r)
	if reversed {
		result = geometry.Reverse(result)
	}
	return geometry.ReorderULC(result)
}

// RemoveCollinear removes every non-turning vertex of a planar loop in any
// orientation, working in the loop's own face coordinates.
func RemoveCollinear(points []geometry.Point3d, tol float64) []geometry.Point3d {
	t, ok := geometry.AlignFace(points)
	if !ok {
		return nil
	}
	face := t.Inverse().ApplyAll(points)
	simplified := Simplify(face, true, tol)
	if simplified == nil {
		return nil
	}
	return t.ApplyAll(simplified)
}

// removeSpikeVertices drops vertices where the boundary doubles back on itself
func removeSpikeVertices(r orb.Ring) orb.Ring {
	points := append([]orb.Point(nil), openPoints(r)...)
	for changed := true; changed && len(points) >= 3; {
		changed = false
		for i := 0; i < len(points); i++ {
			n := len(points)
			prev, cur, next := points[(i+n-1)%n], points[i], points[(i+1)%n]
			if prev == next || isReversal(prev, cur, next) {
				points = append(points[:i], points[i+1:]...)
				changed = true
				break
			}
		}
	}
	if len(points) < 3 {
		return nil
	}
	return closeRing(dedupe(orb.Ring(points)))
}

// isReversal reports whether cur is the tip of a zero-width spike
func isReversal(prev, cur, next orb.Point) bool {
	ax, ay := cur[0]-prev[0], cur[1]-prev[1]
	bx, by := next[0]-cur[0], next[1]-cur[1]
	cross := ax*by - ay*bx
	dot := ax*bx + ay*by
	la, lb := math.Hypot(ax, ay), math.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return true
	}
	return math.Abs(cross) <= collinearEps*la*lb && dot < 0
}

func isCollinear(prev, cur, next orb.Point) bool {
	return planar.DistanceFromSegment(prev, next, cur) <= collinearEps
}

// isNonTurning reports whether the unit edge directions into and out of cur
// are parallel or reversed within tol, the same test RemoveCollinearLegacy uses
func isNonTurning(prev, cur, next orb.Point, tol float64) bool {
	ax, ay := cur[0]-prev[0], cur[1]-prev[1]
	bx, by := next[0]-cur[0], next[1]-cur[1]
	la, lb := math.Hypot(ax, ay), math.Hypot(bx, by)
	if la == 0 || lb == 0 {
		return true
	}
	ax, ay, bx, by = ax/la, ay/la, bx/lb, by/lb
	return math.Abs(ax*by-ay*bx) < tol || ax*bx+ay*by <= -1+tol
}

// removeCollinearVertices drops every vertex that does not turn the outline
func removeCollinearVertices(r orb.Ring, tol float64) orb.Ring {
	points := append([]orb.Point(nil), openPoints(r)...)
	for changed := true; changed && len(points) >= 3; {
		changed = false
		for i := 0; i < len(points); i++ {
			n := len(points)
			if isNonTurning(points[(i+n-1)%n], points[i], points[(i+1)%n], tol) {
				points = append(points[:i], points[i+1:]...)
				changed = true
				break
			}
		}
	}
	if len(points) < 3 {
		return nil
	}
	return closeRing(orb.Ring(points))
}

// removeCollinearStart drops the ring start if it is collinear; Douglas-Peucker keeps it fixed
func removeCollinearStart(r orb.Ring) orb.Ring {
	points := openPoints(r)
	n := len(points)
	if n > 3 && isCollinear(points[n-1], points[0], points[1]) {
		return closeRing(append(orb.Ring(nil), points[1:]...))
	}
	return r
}

// rethread inserts every candidate lying on an edge of r, ordered along the edge
func rethread(r orb.Ring, candidates []geometry.Point3d, tol float64) orb.Ring {
	points := openPoints(r)
	n := len(points)
	result := make(orb.Ring, 0, n+len(candidates)+1)

	type onEdge struct {
		p orb.Point
		t float64
	}
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		result = append(result, a)

		dx, dy := b[0]-a[0], b[1]-a[1]
		length2 := dx*dx + dy*dy
		if length2 == 0 {
			continue
		}
		var found []onEdge
		for _, c := range candidates {
			p := orb.Point{c.X, c.Y}
			if planar.Distance(p, a) <= tol || planar.Distance(p, b) <= tol {
				continue
			}
			if planar.DistanceFromSegment(a, b, p) > tol {
				continue
			}
			t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / length2
			if t > 0 && t < 1 {
				found = append(found, onEdge{p: p, t: t})
			}
		}
		sort.Slice(found, func(x, y int) bool { return found[x].t < found[y].t })
		for _, f := range found {
			if result[len(result)-1] != f.p {
				result = append(result, f.p)
			}
		}
	}
	return closeRing(dedupe(result))
}

// dedupe removes consecutive repeated points
func dedupe(r orb.Ring) orb.Ring {
	result := make(orb.Ring, 0, len(r))
	for _, p := range r {
		if len(result) > 0 && result[len(result)-1] == p {
			continue
		}
		result = append(result, p)
	}
	return result
}
