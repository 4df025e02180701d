package intersection

import (
	"github.com/paulmach/orb"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/triangulate"
)

// RemoveHoles partitions a clockwise face-coordinate polygon with holes into
// convex hole-free pieces whose union is the original region.
func RemoveHoles(polygon []geometry.Point3d, holes [][]geometry.Point3d, tol float64) [][]geometry.Point3d {
	m := newPointMerger(tol)
	outer, ok := m.faceRing(polygon)
	if !ok {
		return nil
	}
	p := orb.Polygon{outer}
	for i, hole := range holes {
		h, ok := m.faceRing(hole)
		if !ok {
			logger().Error("removeHoles: invalid hole", "index", i)
			return nil
		}
		p = append(p, h)
	}

	var result [][]geometry.Point3d
	for _, r := range removeHoles(p, tol) {
		result = append(result, geometry.ReorderULC(m.combineAll(toPoints(r))))
	}
	return result
}

// removeHoles returns clockwise convex pieces covering p
func removeHoles(p orb.Polygon, tol float64) []orb.Ring {
	if len(p) == 1 {
		return []orb.Ring{clockwise(p[0])}
	}
	pieces, err := triangulate.ConvexPartition(p[0], p[1:])
	if err != nil {
		logger().Error("removeHoles: partition failed", "error", err)
		return nil
	}

	var result []orb.Ring
	for _, piece := range pieces {
		if ringArea(piece) <= tol*tol {
			continue
		}
		result = append(result, clockwise(piece))
	}
	return result
}
