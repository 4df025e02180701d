package triangulate

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

func earClip(outer []orb.Point, holes [][]orb.Point, eps float64) ([]Triangle, error) {
	points, err := bridgeHoles(outer, holes, eps)
	if err != nil {
		return nil, err
	}
	return clipEars(points, eps)
}

// bridgeHoles splices every hole into the outer ring through a zero-width
// bridge, rightmost hole first, producing one weakly simple ring.
func bridgeHoles(outer []orb.Point, holes [][]orb.Point, eps float64) ([]orb.Point, error) {
	poly := append([]orb.Point(nil), outer...)

	ordered := make([][]orb.Point, len(holes))
	copy(ordered, holes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i][rightmost(ordered[i])][0] > ordered[j][rightmost(ordered[j])][0]
	})

	for _, hole := range ordered {
		mi := rightmost(hole)
		bridge, ok := findBridge(poly, hole[mi], eps)
		if !ok {
			return nil, ErrBridge
		}

		spliced := make([]orb.Point, 0, len(poly)+len(hole)+2)
		spliced = append(spliced, poly[:bridge+1]...)
		spliced = append(spliced, hole[mi:]...)
		spliced = append(spliced, hole[:mi+1]...)
		spliced = append(spliced, poly[bridge:]...)
		poly = spliced
	}
	return poly, nil
}

func rightmost(points []orb.Point) int {
	best := 0
	for i, p := range points {
		if p[0] > points[best][0] || (p[0] == points[best][0] && p[1] < points[best][1]) {
			best = i
		}
	}
	return best
}

// findBridge returns the index of a ring vertex visible from m along +x
func findBridge(poly []orb.Point, m orb.Point, eps float64) (int, bool) {
	n := len(poly)
	hitX := math.Inf(1)
	candidate := -1

	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		// edges that run upwards have the interior on their left, facing m
		if !(a[1] <= m[1] && b[1] >= m[1]) || a[1] == b[1] {
			continue
		}
		x := a[0] + (m[1]-a[1])*(b[0]-a[0])/(b[1]-a[1])
		if x < m[0] || x >= hitX {
			continue
		}
		hitX = x
		switch {
		case x == a[0] && m[1] == a[1]:
			candidate = i
		case x == b[0] && m[1] == b[1]:
			candidate = (i + 1) % n
		case a[0] > b[0]:
			candidate = i
		default:
			candidate = (i + 1) % n
		}
	}
	if candidate < 0 {
		return -1, false
	}

	hit := orb.Point{hitX, m[1]}
	p := poly[candidate]
	if hit != p {
		// a reflex vertex inside the triangle m, hit, p would block the bridge
		tri, ok := newTriangle(m, hit, p, 0)
		if ok {
			bestAngle := math.Inf(1)
			bestDist := math.Inf(1)
			for i := 0; i < n; i++ {
				q := poly[i]
				if q == p || !isReflex(poly, i, eps) || !inTriangle(q, tri[0], tri[1], tri[2], 0) {
					continue
				}
				angle := math.Abs(math.Atan2(q[1]-m[1], q[0]-m[0]))
				dist := math.Hypot(q[0]-m[0], q[1]-m[1])
				if angle < bestAngle || (angle == bestAngle && dist < bestDist) {
					bestAngle, bestDist = angle, dist
					candidate = i
				}
			}
		}
	}

	// duplicated vertices from earlier bridges; pick the copy whose wedge contains m
	target := poly[candidate]
	for i := 0; i < n; i++ {
		if poly[i] == target && locallyInside(poly, i, m) {
			return i, true
		}
	}
	return candidate, true
}

func isReflex(poly []orb.Point, i int, eps float64) bool {
	n := len(poly)
	return cross(poly[(i+n-1)%n], poly[i], poly[(i+1)%n]) < -eps
}

// locallyInside reports whether the diagonal from vertex i towards q starts inside the polygon
func locallyInside(poly []orb.Point, i int, q orb.Point) bool {
	n := len(poly)
	a, p, b := poly[(i+n-1)%n], poly[i], poly[(i+1)%n]
	if cross(a, p, b) < 0 {
		return cross(p, b, q) >= 0 || cross(p, a, q) <= 0
	}
	return cross(p, b, q) > 0 && cross(p, a, q) < 0
}

// clipEars removes convex vertices whose triangle holds no other vertex
func clipEars(points []orb.Point, eps float64) ([]Triangle, error) {
	n := len(points)
	next := make([]int, n)
	prev := make([]int, n)
	for i := range points {
		next[i] = (i + 1) % n
		prev[i] = (i + n - 1) % n
	}

	var triangles []Triangle
	remaining := n
	cur := 0
	stalled := 0
	for remaining > 3 {
		a, b, c := prev[cur], cur, next[cur]
		if isEar(points, next, a, b, c, eps) {
			if t, ok := newTriangle(points[a], points[b], points[c], eps); ok {
				triangles = append(triangles, t)
			}
			next[a], prev[c] = c, a
			remaining--
			cur = c
			stalled = 0
			continue
		}

		cur = next[cur]
		stalled++
		if stalled < remaining {
			continue
		}

		// no ear in a full loop; drop one flat vertex and retry
		dropped := false
		for i, k := cur, 0; k < remaining; i, k = next[i], k+1 {
			if math.Abs(cross(points[prev[i]], points[i], points[next[i]])) <= eps {
				next[prev[i]], prev[next[i]] = next[i], prev[i]
				remaining--
				cur = next[i]
				dropped = true
				break
			}
		}
		if !dropped {
			return nil, ErrNoEar
		}
		stalled = 0
	}

	if t, ok := newTriangle(points[prev[cur]], points[cur], points[next[cur]], eps); ok && cross(points[prev[cur]], points[cur], points[next[cur]]) > 0 {
		triangles = append(triangles, t)
	}
	return triangles, nil
}

func isEar(points []orb.Point, next []int, a, b, c int, eps float64) bool {
	pa, pb, pc := points[a], points[b], points[c]
	if cross(pa, pb, pc) <= eps {
		return false
	}
	for i := next[c]; i != a; i = next[i] {
		p := points[i]
		if p == pa || p == pb || p == pc {
			continue
		}
		if inTriangle(p, pa, pb, pc, eps) {
			return false
		}
	}
	return true
}
