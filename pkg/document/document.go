// Package document reads and writes the YAML files used by the command line
// tool to describe polygons and the faces of a solid. JSON input also
// parses since it is valid YAML.
package document

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/polygon"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
)

// Points is a vertex loop written as a list of [x, y] or [x, y, z] triples
type Points []geometry.Point3d

func (p *Points) UnmarshalYAML(value *yaml.Node) error {
	var raw [][]float64
	if err := value.Decode(&raw); err != nil {
		return err
	}
	points := make(Points, 0, len(raw))
	for i, c := range raw {
		switch len(c) {
		case 2:
			points = append(points, geometry.NewPoint3d(c[0], c[1], 0))
		case 3:
			points = append(points, geometry.NewPoint3d(c[0], c[1], c[2]))
		default:
			return fmt.Errorf("line %d: point %d has %d coordinates", value.Line, i, len(c))
		}
	}
	*p = points
	return nil
}

func (p Points) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range p {
		point := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, c := range []float64{v.X, v.Y, v.Z} {
			point.Content = append(point.Content, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!float",
				Value: fmt.Sprintf("%g", c),
			})
		}
		node.Content = append(node.Content, point)
	}
	return node, nil
}

// Polygon is a named loop with optional holes
type Polygon struct {
	Name     string   `yaml:"name,omitempty"`
	Vertices Points   `yaml:"vertices"`
	Holes    []Points `yaml:"holes,omitempty"`
}

// Polygon3d converts the entry into a polygon with holes
func (p Polygon) Polygon3d() *polygon.Polygon3d {
	holes := make([][]geometry.Point3d, len(p.Holes))
	for i, h := range p.Holes {
		holes[i] = h
	}
	return polygon.New(p.Vertices, holes...)
}

// Document holds polygons for the 2D commands and surfaces for solids
type Document struct {
	Polygons []Polygon `yaml:"polygons,omitempty"`
	Surfaces []Polygon `yaml:"surfaces,omitempty"`
}

// Surfaces3d converts the surfaces into polyhedron faces numbered in file order
func (d *Document) Surfaces3d() []*polyhedron.Surface3d {
	result := make([]*polyhedron.Surface3d, 0, len(d.Surfaces))
	for i, s := range d.Surfaces {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("surface-%d", i)
		}
		result = append(result, polyhedron.NewSurface3d(s.Vertices, name, i))
	}
	return result
}

// Loops returns the outer loop of every polygon
func (d *Document) Loops() [][]geometry.Point3d {
	result := make([][]geometry.Point3d, len(d.Polygons))
	for i, p := range d.Polygons {
		result[i] = p.Vertices
	}
	return result
}

// FromLoops builds a document with one polygon per loop
func FromLoops(prefix string, loops [][]geometry.Point3d) *Document {
	d := &Document{}
	for i, loop := range loops {
		d.Polygons = append(d.Polygons, Polygon{Name: fmt.Sprintf("%s-%d", prefix, i), Vertices: loop})
	}
	return d
}

// Load reads a document file
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a document and checks that every loop has at least three vertices
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	for _, group := range [][]Polygon{d.Polygons, d.Surfaces} {
		for i, p := range group {
			if len(p.Vertices) < 3 {
				return nil, fmt.Errorf("polygon %d (%s) has %d vertices", i, p.Name, len(p.Vertices))
			}
			for j, h := range p.Holes {
				if len(h) < 3 {
					return nil, fmt.Errorf("hole %d of polygon %d (%s) has %d vertices", j, i, p.Name, len(h))
				}
			}
		}
	}
	return &d, nil
}

// Write encodes a document as YAML
func Write(w io.Writer, d *Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return encoder.Close()
}
