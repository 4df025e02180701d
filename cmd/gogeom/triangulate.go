package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

var triangulateCmd = &cobra.Command{
	Use:   "triangulate [file]",
	Short: "Triangulate the polygons of a document",
	Long:  "Split every polygon, holes included, into triangles wound like its outer loop.",
	Args:  cobra.ExactArgs(1),
	Run:   runTriangulate,
}

func init() {
	rootCmd.AddCommand(triangulateCmd)
}

func runTriangulate(cmd *cobra.Command, args []string) {
	doc := mustLoad(args[0])

	var triangles [][]geometry.Point3d
	for i, entry := range doc.Polygons {
		t := entry.Polygon3d().Triangulate(cfg.Tolerance)
		if t == nil {
			slog.Warn("could not triangulate polygon", "index", i, "name", entry.Name)
			continue
		}
		triangles = append(triangles, t...)
	}

	writeLoops("triangle", triangles)
	fmt.Printf("# %d triangles\n", len(triangles))
}
