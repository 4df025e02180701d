package polyhedron

import (
	"fmt"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// Surface3dEdge is the edge between two consecutive vertices of a surface
// and the surfaces that share it
type Surface3dEdge struct {
	start, end   geometry.Point3d
	firstSurfNum int
	surfNums     []int
	conflicted   bool
	created      bool
}

func newEdge(start, end geometry.Point3d, surfNum int) *Surface3dEdge {
	return &Surface3dEdge{start: start, end: end, firstSurfNum: surfNum, surfNums: []int{surfNum}}
}

// Start is the first vertex in the owning surface's winding
func (e *Surface3dEdge) Start() geometry.Point3d { return e.start }

// End is the second vertex in the owning surface's winding
func (e *Surface3dEdge) End() geometry.Point3d { return e.end }

// SurfNums are the surfaces that traverse this edge, the owning surface first
func (e *Surface3dEdge) SurfNums() []int { return e.surfNums }

// Count is the number of surface occurrences on this edge
func (e *Surface3dEdge) Count() int { return len(e.surfNums) }

// Conflicted reports whether another surface traverses the edge in the same direction
func (e *Surface3dEdge) Conflicted() bool { return e.conflicted }

// Created reports whether the edge was split to insert a missing collinear vertex
func (e *Surface3dEdge) Created() bool { return e.created }

func (e *Surface3dEdge) containsSurfNum(surfNum int) bool {
	for _, n := range e.surfNums {
		if n == surfNum {
			return true
		}
	}
	return false
}

func (e *Surface3dEdge) reset() {
	e.surfNums = []int{e.firstSurfNum}
	e.conflicted = false
}

// equal is undirected: (A,B) equals (B,A)
func (e *Surface3dEdge) equal(other *Surface3dEdge, tol float64) bool {
	return (e.start.IsAlmostEqual(other.start, tol) && e.end.IsAlmostEqual(other.end, tol)) ||
		e.reverseEqual(other, tol)
}

func (e *Surface3dEdge) reverseEqual(other *Surface3dEdge, tol float64) bool {
	return e.start.IsAlmostEqual(other.end, tol) && e.end.IsAlmostEqual(other.start, tol)
}

func (e *Surface3dEdge) String() string {
	return fmt.Sprintf("[%s, %s] surfaces=%v", e.start, e.end, e.surfNums)
}

// Surface3d is a named planar face of a polyhedron
type Surface3d struct {
	Name     string
	SurfNum  int
	Vertices []geometry.Point3d
	edges    []*Surface3dEdge
}

// NewSurface3d creates a surface and its edges. The vertex loop is implicitly closed.
func NewSurface3d(vertices []geometry.Point3d, name string, surfNum int) *Surface3d {
	s := &Surface3d{
		Name:     name,
		SurfNum:  surfNum,
		Vertices: append([]geometry.Point3d(nil), vertices...),
	}
	n := len(s.Vertices)
	for i := range s.Vertices {
		s.edges = append(s.edges, newEdge(s.Vertices[i], s.Vertices[(i+1)%n], surfNum))
	}
	return s
}

// Edges returns one edge per consecutive vertex pair
func (s *Surface3d) Edges() []*Surface3dEdge {
	return s.edges
}

// splitEdge inserts vertex v into edge i, keeping edge i between vertices i and i+1
func (s *Surface3d) splitEdge(i int, v geometry.Point3d) {
	e := s.edges[i]
	first := &Surface3dEdge{start: e.start, end: v, firstSurfNum: s.SurfNum, surfNums: []int{s.SurfNum}, created: true}
	second := &Surface3dEdge{start: v, end: e.end, firstSurfNum: s.SurfNum, surfNums: []int{s.SurfNum}, created: true}

	edges := make([]*Surface3dEdge, 0, len(s.edges)+1)
	edges = append(edges, s.edges[:i]...)
	edges = append(edges, first, second)
	s.edges = append(edges, s.edges[i+1:]...)

	vertices := make([]geometry.Point3d, 0, len(s.Vertices)+1)
	vertices = append(vertices, s.Vertices[:i+1]...)
	vertices = append(vertices, v)
	s.Vertices = append(vertices, s.Vertices[i+1:]...)
}

func (s *Surface3d) conflictedFraction() float64 {
	if len(s.edges) == 0 {
		return 0
	}
	conflicted := 0
	for _, e := range s.edges {
		if e.conflicted {
			conflicted++
		}
	}
	return float64(conflicted) / float64(len(s.edges))
}
