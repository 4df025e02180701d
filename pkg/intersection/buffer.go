package intersection

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

const (
	// bufferMiterLimit caps miter length as a multiple of the offset for Buffer
	bufferMiterLimit = 15.0
	// spikeMiterLimit keeps sharp corners intact during spike removal
	spikeMiterLimit = 100.0
	// strokeTolerance is the flattening tolerance of the stroker in kernel units
	strokeTolerance = 0.01
)

// Buffer offsets a clockwise face-coordinate loop by amount using miter
// joins. Positive amounts grow the polygon. Narrow notches narrower than
// twice the amount close up when growing. Returns false if the result is
// empty or not a single polygon without holes.
func Buffer(polygon []geometry.Point3d, amount, tol float64) ([]geometry.Point3d, bool) {
	m := newPointMerger(tol)
	r, ok := m.faceRing(polygon)
	if !ok {
		return nil, false
	}

	buffered, ok := bufferRing(r, amount, bufferMiterLimit)
	if !ok || len(buffered) != 1 || len(buffered[0]) != 1 {
		logger().Debug("buffer: result is not a single polygon", "pieces", len(buffered))
		return nil, false
	}
	return geometry.ReorderULC(toPoints(buffered[0][0])), true
}

// BufferAll offsets every polygon and unions the results. Holes left by the
// union are discarded; only outlines are returned, clockwise.
func BufferAll(polygons [][]geometry.Point3d, amount, tol float64) [][]geometry.Point3d {
	var all orb.MultiPolygon
	for i, polygon := range polygons {
		m := newPointMerger(tol)
		r, ok := m.faceRing(polygon)
		if !ok {
			logger().Warn("bufferAll: skipping invalid polygon", "index", i)
			continue
		}
		buffered, ok := bufferRing(r, amount, bufferMiterLimit)
		if !ok {
			logger().Warn("bufferAll: could not buffer polygon", "index", i)
			continue
		}
		all = append(all, buffered...)
	}
	if len(all) == 0 {
		return nil
	}

	merged, ok := unionAll(all)
	if !ok {
		return nil
	}

	var result [][]geometry.Point3d
	for _, p := range merged {
		if len(p) > 1 {
			logger().Debug("bufferAll: discarding holes", "holes", len(p)-1)
		}
		if polygonArea(orb.Polygon{p[0]}) <= tol*tol {
			continue
		}
		result = append(result, geometry.ReorderULC(toPoints(p[0])))
	}
	return result
}

// unionAll merges polygons one at a time
func unionAll(polygons orb.MultiPolygon) (orb.MultiPolygon, bool) {
	if len(polygons) == 0 {
		return nil, true
	}
	result := orb.MultiPolygon{normalize(polygons[0])}
	for _, p := range polygons[1:] {
		var ok bool
		result, ok = boolean(opUnion, result, orb.MultiPolygon{p})
		if !ok {
			return nil, false
		}
	}
	return result, true
}

// bufferRing offsets r by distance. The outline is stroked with a band of
// twice the distance using miter joins; growing unions the band with the
// polygon and shrinking subtracts it.
func bufferRing(r orb.Ring, distance, miterLimit float64) (result orb.MultiPolygon, ok bool) {
	if distance == 0 {
		return orb.MultiPolygon{{clockwise(r)}}, true
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger().Error("buffer failed", "distance", distance, "panic", fmt.Sprint(rec))
			result, ok = nil, false
		}
	}()

	outline := toCanvas(r)
	joiner := canvas.MiterJoiner{GapJoiner: canvas.BevelJoin, Limit: miterLimit}
	band := outline.Stroke(2*math.Abs(distance)*kernelScale, canvas.ButtCap, joiner, strokeTolerance)

	if distance > 0 {
		return fromCanvas(outline.Or(band)), true
	}
	return fromCanvas(outline.Not(band)), true
}

// toCanvas converts a ring into a closed path in kernel units
func toCanvas(r orb.Ring) *canvas.Path {
	p := &canvas.Path{}
	for i, pt := range openPoints(r) {
		if i == 0 {
			p.MoveTo(pt[0]*kernelScale, pt[1]*kernelScale)
		} else {
			p.LineTo(pt[0]*kernelScale, pt[1]*kernelScale)
		}
	}
	p.Close()
	return p
}

// fromCanvas converts every closed subpath back to face units and nests
// them into polygons
func fromCanvas(p *canvas.Path) orb.MultiPolygon {
	var rings []orb.Ring
	for _, sub := range p.Split() {
		var r orb.Ring
		for _, c := range sub.Coords() {
			q := orb.Point{c.X / kernelScale, c.Y / kernelScale}
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
