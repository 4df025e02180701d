// Package openscad exchanges solids with OpenSCAD: faces are exported as a
// polyhedron() call and .scad sources are rendered to STL by the openscad binary.
package openscad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
)

// WritePolyhedron writes the faces as a single polyhedron() statement.
// Vertices within tol are shared. OpenSCAD expects faces clockwise when seen
// from outside, so outward wound loops are reversed.
func WritePolyhedron(w io.Writer, surfaces []*polyhedron.Surface3d, tol float64) error {
	var points []geometry.Point3d
	index := func(p geometry.Point3d) int {
		for i, q := range points {
			if q.IsAlmostEqual(p, tol) {
				return i
			}
		}
		points = append(points, p)
		return len(points) - 1
	}

	faces := make([][]int, 0, len(surfaces))
	for _, s := range surfaces {
		n := len(s.Vertices)
		face := make([]int, n)
		for i, v := range s.Vertices {
			face[n-1-i] = index(v)
		}
		faces = append(faces, face)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("polyhedron(\n  points = [\n")
	for i, p := range points {
		fmt.Fprintf(bw, "    [%s, %s, %s]", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
		bw.WriteString(separator(i, len(points)))
	}
	bw.WriteString("  ],\n  faces = [\n")
	for i, face := range faces {
		bw.WriteString("    [")
		for j, v := range face {
			if j > 0 {
				bw.WriteString(", ")
			}
			bw.WriteString(strconv.Itoa(v))
		}
		fmt.Fprintf(bw, "]%s", separator(i, len(faces)))
	}
	bw.WriteString("  ]\n);\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing polyhedron: %w", err)
	}
	return nil
}

func separator(i, n int) string {
	if i < n-1 {
		return ",\n"
	}
	return "\n"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
