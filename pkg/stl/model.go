package stl

import (
	"fmt"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
)

// Facet is one triangle of an STL model. The stored normal is informational;
// orientation follows the vertex order.
type Facet struct {
	Normal   geometry.Vector3d
	Vertices [3]geometry.Point3d
}

// Area of the facet triangle
func (f Facet) Area() float64 {
	area, _ := geometry.GetArea(f.Vertices[:])
	return area
}

// Model represents a complete STL model
type Model struct {
	Name   string
	Facets []Facet
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:   name,
		Facets: make([]Facet, 0),
	}
}

// AddFacet adds a facet to the model
func (m *Model) AddFacet(facet Facet) {
	m.Facets = append(m.Facets, facet)
}

// FacetCount returns the number of facets in the model
func (m *Model) FacetCount() int {
	return len(m.Facets)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, facet := range m.Facets {
		for _, v := range facet.Vertices {
			bbox.Extend(v)
		}
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, facet := range m.Facets {
		totalArea += facet.Area()
	}
	return totalArea
}

// Surfaces converts every facet into a polyhedron face named after its index
func (m *Model) Surfaces() []*polyhedron.Surface3d {
	surfaces := make([]*polyhedron.Surface3d, 0, len(m.Facets))
	for i, facet := range m.Facets {
		surfaces = append(surfaces, polyhedron.NewSurface3d(facet.Vertices[:], fmt.Sprintf("facet-%d", i), i))
	}
	return surfaces
}
