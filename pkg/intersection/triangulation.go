package intersection

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/triangulate"
)

// downwardTol is how far the unit normal may deviate from -z
const downwardTol = 0.001

// ComputeTriangulation triangulates a polygon with holes given clockwise in
// face coordinates (outward normal along -z). Any other input yields nil.
// Holes that are not fully inside the polygon are subtracted first and the
// remaining pieces are triangulated separately. Triangle vertices are snapped
// onto input vertices within tol.
func ComputeTriangulation(vertices []geometry.Point3d, holes [][]geometry.Point3d, tol float64) [][]geometry.Point3d {
	if !facesDown(vertices) {
		return nil
	}
	for _, hole := range holes {
		if !facesDown(hole) {
			return nil
		}
	}

	m := newPointMerger(tol)
	m.combineAll(vertices)
	for _, hole := range holes {
		m.combineAll(hole)
	}

	allWithin := true
	for _, hole := range holes {
		if !Within(hole, vertices, tol) {
			allWithin = false
			break
		}
	}

	var regions []orb.Polygon
	if allWithin {
		p := orb.Polygon{m.ring(vertices)}
		for _, hole := range holes {
			p = append(p, m.ring(hole))
		}
		regions = append(regions, p)
	} else {
		for _, piece := range Subtract(vertices, holes, tol) {
			regions = append(regions, orb.Polygon{m.ring(piece)})
		}
	}

	var result [][]geometry.Point3d
	for _, region := range regions {
		if polygonArea(region) <= tol*tol {
			continue
		}
		triangles, err := triangulate.Triangulate(region[0], region[1:])
		if err != nil {
			logger().Debug("triangulation failed", "error", err)
			continue
		}
		for _, t := range triangles {
			// triangles come back counter-clockwise
			result = append(result, []geometry.Point3d{
				m.combine(geometry.NewPoint3d(t[0][0], t[0][1], 0)),
				m.combine(geometry.NewPoint3d(t[2][0], t[2][1], 0)),
				m.combine(geometry.NewPoint3d(t[1][0], t[1][1], 0)),
			})
		}
	}
	return result
}

func facesDown(points []geometry.Point3d) bool {
	normal, ok := geometry.GetOutwardNormal(points)
	return ok && math.Abs(normal.Z+1) <= downwardTol
}
