package intersection

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type boolOp int

const (
	opUnion boolOp = iota
	opIntersection
	opDifference
)

func (o boolOp) String() string {
	switch o {
	case opUnion:
		return "union"
	case opIntersection:
		return "intersection"
	case opDifference:
		return "difference"
	}
	return fmt.Sprintf("boolOp(%d)", int(o))
}

// minKernelArea drops slivers the kernel leaves behind, in face units squared
const minKernelArea = 1e-12

// boolean runs one kernel operation. Outer rings of the result are clockwise
// and holes counter-clockwise. Returns false if the kernel failed.
func boolean(op boolOp, subject, clipping orb.MultiPolygon) (result orb.MultiPolygon, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger().Error("boolean kernel failed", "op", op.String(), "panic", fmt.Sprint(r))
			result, ok = nil, false
		}
	}()

	s, c := toKernel(subject), toKernel(clipping)
	var out []geom.Polygon
	switch op {
	case opUnion:
		out = s.Union(c).Polygons()
	case opIntersection:
		out = s.Intersection(c).Polygons()
	case opDifference:
		out = s.Difference(c).Polygons()
	}

	var paths geom.Polygon
	for _, p := range out {
		paths = append(paths, p...)
	}
	return fromKernel(paths), true
}

func toKernel(mp orb.MultiPolygon) geom.Polygon {
	out := make(geom.Polygon, 0, len(mp))
	for _, p := range mp {
		for _, r := range p {
			points := openPoints(r)
			path := make([]geom.Point, len(points))
			for i, pt := range points {
				path[i] = geom.Point{X: pt[0] * kernelScale, Y: pt[1] * kernelScale}
			}
			out = append(out, path)
		}
	}
	return out
}

func fromKernel(g geom.Polygon) orb.MultiPolygon {
	var rings []orb.Ring
	for _, path := range g {
		r := make(orb.Ring, 0, len(path)+1)
		for _, pt := range path {
			q := orb.Point{pt.X / kernelScale, pt.Y / kernelScale}
			if len(r) > 0 && r[len(r)-1] == q {
				continue
			}
			r = append(r, q)
		}
		r = closeRing(r)
		if len(r) < 4 || math.Abs(ringArea(r)) <= minKernelArea {
			continue
		}
		rings = append(rings, r)
	}
	return nestRings(rings)
}

// nestRings classifies rings by containment depth: even depth is an outer
// ring, odd depth a hole of the smallest outer ring around it.
func nestRings(rings []orb.Ring) orb.MultiPolygon {
	n := len(rings)
	areas := make([]float64, n)
	samples := make([]orb.Point, n)
	for i, r := range rings {
		areas[i] = math.Abs(ringArea(r))
		samples[i] = interiorPoint(r)
	}

	contains := func(outer, inner int) bool {
		return outer != inner && areas[outer] > areas[inner] && planar.RingContains(rings[outer], samples[inner])
	}

	depth := make([]int, n)
	for i := range rings {
		for j := range rings {
			if contains(j, i) {
				depth[i]++
			}
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return areas[order[a]] > areas[order[b]] })

	var result orb.MultiPolygon
	owner := make(map[int]int)
	for _, i := range order {
		if depth[i]%2 == 0 {
			owner[i] = len(result)
			result = append(result, orb.Polygon{clockwise(rings[i])})
		}
	}
	for _, i := range order {
		if depth[i]%2 == 0 {
			continue
		}
		parent, parentArea := -1, math.Inf(1)
		for j := range rings {
			if depth[j] == depth[i]-1 && contains(j, i) && areas[j] < parentArea {
				parent, parentArea = j, areas[j]
			}
		}
		if parent < 0 {
			continue
		}
		k := owner[parent]
		result[k] = append(result[k], counterClockwise(rings[i]))
	}
	return result
}

// simplePolygons returns the hole-free pieces of mp, partitioning any piece
// with holes into convex parts
func simplePolygons(mp orb.MultiPolygon, tol float64) []orb.Ring {
	var rings []orb.Ring
	for _, p := range mp {
		if polygonArea(p) <= tol*tol {
			continue
		}
		if len(p) == 1 {
			rings = append(rings, p[0])
			continue
		}
		rings = append(rings, removeHoles(p, tol)...)
	}
	return rings
}
