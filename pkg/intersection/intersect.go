package intersection

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// IntersectionResult splits two overlapping polygons. Polygon1 and Polygon2
// are the largest shared piece; NewPolygons1 and NewPolygons2 hold what is
// left of each input, including any smaller shared pieces.
type IntersectionResult struct {
	Polygon1     []geometry.Point3d
	Polygon2     []geometry.Point3d
	NewPolygons1 [][]geometry.Point3d
	NewPolygons2 [][]geometry.Point3d
}

// Area1 is the area accounted to the first polygon
func (r *IntersectionResult) Area1() float64 {
	return totalArea(append([][]geometry.Point3d{r.Polygon1}, r.NewPolygons1...))
}

// Area2 is the area accounted to the second polygon
func (r *IntersectionResult) Area2() float64 {
	return totalArea(append([][]geometry.Point3d{r.Polygon2}, r.NewPolygons2...))
}

func totalArea(polygons [][]geometry.Point3d) float64 {
	sum := 0.0
	for _, p := range polygons {
		if area, ok := geometry.GetArea(p); ok {
			sum += area
		}
	}
	return sum
}

// Intersect computes the overlap of two clockwise face-coordinate loops.
// Returns nil if either input is invalid or they do not overlap by more than tol².
// Pieces smaller than tol², self-intersecting pieces and holes are never returned.
func Intersect(polygon1, polygon2 []geometry.Point3d, tol float64) *IntersectionResult {
	m := newPointMerger(tol)
	r1, ok := m.faceRing(polygon1)
	if !ok {
		return nil
	}
	r2, ok := m.faceRing(polygon2)
	if !ok {
		return nil
	}
	if selfIntersects(r1) || selfIntersects(r2) {
		logger().Error("intersect: input polygon self intersects")
		return nil
	}
	a, b := orb.MultiPolygon{{r1}}, orb.MultiPolygon{{r2}}

	shared, ok := boolean(opIntersection, a, b)
	if !ok {
		return nil
	}
	pieces := cleanPieces(m, simplePolygons(shared, tol), tol)
	if len(pieces) == 0 {
		return nil
	}
	sortByArea(pieces)

	only1, ok := boolean(opDifference, a, b)
	if !ok {
		return nil
	}
	only2, ok := boolean(opDifference, b, a)
	if !ok {
		return nil
	}

	result := &IntersectionResult{
		Polygon1: pieces[0],
		Polygon2: pieces[0],
	}
	result.NewPolygons1 = append(cleanPieces(m, simplePolygons(only1, tol), tol), pieces[1:]...)
	result.NewPolygons2 = append(cleanPieces(m, simplePolygons(only2, tol), tol), pieces[1:]...)
	return result
}

// Subtract removes every hole from polygon in turn. The result may be
// several disjoint clockwise polygons, none with holes.
func Subtract(polygon []geometry.Point3d, holes [][]geometry.Point3d, tol float64) [][]geometry.Point3d {
	m := newPointMerger(tol)
	r, ok := m.faceRing(polygon)
	if !ok {
		return nil
	}

	current := orb.MultiPolygon{{r}}
	for i, hole := range holes {
		h, ok := m.faceRing(hole)
		if !ok {
			logger().Error("subtract: invalid hole", "index", i)
			return nil
		}
		var next orb.MultiPolygon
		for _, ring := range simplePolygons(current, tol) {
			diff, ok := boolean(opDifference, orb.MultiPolygon{{ring}}, orb.MultiPolygon{{h}})
			if !ok {
				return nil
			}
			next = append(next, diff...)
		}
		current = next
	}

	var result [][]geometry.Point3d
	for _, piece := range cleanPieces(m, simplePolygons(current, tol), tol) {
		if cleaned := RemoveSpikes(piece, tol); cleaned != nil {
			piece = cleaned
		}
		result = append(result, piece)
	}
	return result
}

// cleanPieces merges piece vertices with known points and drops pieces that
// are too small or self intersect
func cleanPieces(m *pointMerger, rings []orb.Ring, tol float64) [][]geometry.Point3d {
	var result [][]geometry.Point3d
	for _, r := range rings {
		points := Simplify(m.combineAll(toPoints(clockwise(r))), false, tol)
		if points == nil {
			logger().Debug("dropping degenerate piece")
			continue
		}
		if area, ok := geometry.GetArea(points); !ok || area <= tol*tol {
			logger().Debug("dropping small piece", "area", area)
			continue
		}
		if SelfIntersects(points, 0) {
			logger().Debug("dropping self intersecting piece")
			continue
		}
		result = append(result, points)
	}
	return result
}

func sortByArea(polygons [][]geometry.Point3d) {
	sort.SliceStable(polygons, func(i, j int) bool {
		ai, _ := geometry.GetArea(polygons[i])
		aj, _ := geometry.GetArea(polygons[j])
		return ai > aj
	})
}
