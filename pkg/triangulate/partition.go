package triangulate

import "github.com/paulmach/orb"

// ConvexPartition triangulates the polygon and merges the triangles into
// convex pieces with the Hertel-Mehlhorn heuristic. The pieces cover the
// polygon exactly and never contain a hole.
func ConvexPartition(outer orb.Ring, holes []orb.Ring) ([]orb.Ring, error) {
	triangles, err := Triangulate(outer, holes)
	if err != nil {
		return nil, err
	}
	return HertelMehlhorn(triangles), nil
}

// HertelMehlhorn removes inessential diagonals between triangles. A diagonal
// is removed when both of its endpoints stay convex in the merged piece.
func HertelMehlhorn(triangles []Triangle) []orb.Ring {
	pieces := make([][]orb.Point, len(triangles))
	for i, t := range triangles {
		pieces[i] = []orb.Point{t[0], t[1], t[2]}
	}

	for merged := true; merged; {
		merged = false
	search:
		for i := 0; i < len(pieces); i++ {
			for j := i + 1; j < len(pieces); j++ {
				if m, ok := mergeConvex(pieces[i], pieces[j]); ok {
					pieces[i] = m
					pieces = append(pieces[:j], pieces[j+1:]...)
					merged = true
					break search
				}
			}
		}
	}

	rings := make([]orb.Ring, len(pieces))
	for i, p := range pieces {
		rings[i] = append(orb.Ring(append([]orb.Point(nil), p...)), p[0])
	}
	return rings
}

// mergeConvex joins two counter-clockwise pieces across a shared edge if the result is convex
func mergeConvex(p, q []orb.Point) ([]orb.Point, bool) {
	for ia := range p {
		ib := (ia + 1) % len(p)
		a, b := p[ia], p[ib]
		for jb := range q {
			ja := (jb + 1) % len(q)
			if q[jb] != b || q[ja] != a {
				continue
			}

			merged := make([]orb.Point, 0, len(p)+len(q)-2)
			for k := 0; k < len(p); k++ {
				merged = append(merged, p[(ib+k)%len(p)])
			}
			for k := 1; k < len(q)-1; k++ {
				merged = append(merged, q[(ja+k)%len(q)])
			}
			if isConvex(merged) {
				return merged, true
			}
			return nil, false
		}
	}
	return nil, false
}

func isConvex(points []orb.Point) bool {
	n := len(points)
	for i := range points {
		if cross(points[(i+n-1)%n], points[i], points[(i+1)%n]) < 0 {
			return false
		}
	}
	return true
}
