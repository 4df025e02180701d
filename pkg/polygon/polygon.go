// Package polygon provides Polygon3d, a planar polygon with holes in world
// coordinates, and its measurement and containment queries.
package polygon

import (
	"log/slog"
	"math"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/intersection"
)

func logger() *slog.Logger {
	return slog.Default().With("component", "polygon")
}

// Polygon3d is an outer loop with zero or more holes. Loops are implicitly
// closed and may be wound either way.
type Polygon3d struct {
	outer []geometry.Point3d
	holes [][]geometry.Point3d
}

// New creates a polygon from its outer loop and holes
func New(outer []geometry.Point3d, holes ...[]geometry.Point3d) *Polygon3d {
	p := &Polygon3d{outer: append([]geometry.Point3d(nil), outer...)}
	for _, hole := range holes {
		p.AddHole(hole)
	}
	return p
}

// Outer returns the outer loop
func (p *Polygon3d) Outer() []geometry.Point3d {
	return p.outer
}

// Holes returns the inner loops
func (p *Polygon3d) Holes() [][]geometry.Point3d {
	return p.holes
}

// AddHole appends an inner loop
func (p *Polygon3d) AddHole(hole []geometry.Point3d) {
	p.holes = append(p.holes, append([]geometry.Point3d(nil), hole...))
}

// GrossArea is the area of the outer loop, zero if it is degenerate
func (p *Polygon3d) GrossArea() float64 {
	area, _ := geometry.GetArea(p.outer)
	return area
}

// NetArea is the gross area minus the area of every hole
func (p *Polygon3d) NetArea() float64 {
	area := p.GrossArea()
	for _, hole := range p.holes {
		if a, ok := geometry.GetArea(hole); ok {
			area -= a
		}
	}
	return area
}

// Perimeter is the length of all loops
func (p *Polygon3d) Perimeter() float64 {
	perimeter := geometry.GetPerimeter(p.outer)
	for _, hole := range p.holes {
		perimeter += geometry.GetPerimeter(hole)
	}
	return perimeter
}

// OuterNormal is the outward normal of the outer loop
func (p *Polygon3d) OuterNormal() (geometry.Vector3d, bool) {
	return geometry.GetOutwardNormal(p.outer)
}

// Centroid is the area centroid of the region between the outer loop and the holes
func (p *Polygon3d) Centroid() (geometry.Point3d, bool) {
	c, ok := geometry.GetCentroid(p.outer)
	if !ok {
		return geometry.Point3d{}, false
	}
	gross := p.GrossArea()
	if len(p.holes) == 0 {
		return c, true
	}

	sum := c.Vector().Mul(gross)
	net := gross
	for _, hole := range p.holes {
		hc, ok := geometry.GetCentroid(hole)
		area, okArea := geometry.GetArea(hole)
		if !ok || !okArea {
			continue
		}
		sum = sum.Sub(hc.Vector().Mul(area))
		net -= area
	}
	if net <= 0 {
		return geometry.Point3d{}, false
	}
	v := sum.Mul(1 / net)
	return geometry.NewPoint3d(v.X, v.Y, v.Z), true
}

// PointInPolygon reports whether point lies within tol of the outer loop or
// any hole boundary
func (p *Polygon3d) PointInPolygon(point geometry.Point3d, tol float64) bool {
	if onBoundary(point, p.outer, tol) {
		return true
	}
	for _, hole := range p.holes {
		if onBoundary(point, hole, tol) {
			return true
		}
	}
	return false
}

func onBoundary(point geometry.Point3d, loop []geometry.Point3d, tol float64) bool {
	n := len(loop)
	for i := range loop {
		if geometry.GetDistancePointToLineSegment(point, loop[i], loop[(i+1)%n]) <= tol {
			return true
		}
	}
	return false
}

// Within reports whether point lies on the polygon plane, inside the outer
// loop and outside every hole
func (p *Polygon3d) Within(point geometry.Point3d, tol float64) bool {
	t, ok := geometry.AlignFace(p.outer)
	if !ok {
		return false
	}
	toFace := t.Inverse()

	facePoint := toFace.Apply(point)
	if math.Abs(facePoint.Z) >= tol {
		return false
	}
	facePoint.Z = 0

	outer, ok := faceLoop(toFace, p.outer, tol)
	if !ok || !intersection.WithinPoint(facePoint, outer, tol) {
		return false
	}
	for i, hole := range p.holes {
		h, ok := faceLoop(toFace, hole, tol)
		if !ok {
			logger().Warn("within: hole is not in the polygon plane", "index", i)
			continue
		}
		if intersection.WithinPoint(facePoint, h, tol) {
			return false
		}
	}
	return true
}

// Inside is Within or PointInPolygon
func (p *Polygon3d) Inside(point geometry.Point3d, tol float64) bool {
	return p.Within(point, tol) || p.PointInPolygon(point, tol)
}

// faceLoop maps a loop into face coordinates wound clockwise
func faceLoop(toFace geometry.Transformation, loop []geometry.Point3d, tol float64) ([]geometry.Point3d, bool) {
	face := toFace.ApplyAll(loop)
	for i := range face {
		if math.Abs(face[i].Z) >= tol {
			return nil, false
		}
		face[i].Z = 0
	}
	normal, ok := geometry.GetOutwardNormal(face)
	if !ok {
		return nil, false
	}
	if normal.Z > 0 {
		face = geometry.Reverse(face)
	}
	return face, true
}

// Triangulate splits the polygon into triangles wound like the outer loop.
// Returns nil if the polygon cannot be triangulated.
func (p *Polygon3d) Triangulate(tol float64) [][]geometry.Point3d {
	t, ok := geometry.AlignFace(p.outer)
	if !ok {
		return nil
	}
	toFace := t.Inverse()

	outer, ok := faceLoop(toFace, p.outer, tol)
	if !ok {
		logger().Error("triangulate: outer loop is not planar")
		return nil
	}
	var holes [][]geometry.Point3d
	for i, hole := range p.holes {
		h, ok := faceLoop(toFace, hole, tol)
		if !ok {
			logger().Error("triangulate: hole is not in the polygon plane", "index", i)
			return nil
		}
		holes = append(holes, h)
	}

	// face triangles are clockwise, the outer loop is counter-clockwise in face coordinates
	var result [][]geometry.Point3d
	for _, triangle := range intersection.ComputeTriangulation(outer, holes, tol) {
		result = append(result, geometry.Reverse(t.ApplyAll(triangle)))
	}
	return result
}
