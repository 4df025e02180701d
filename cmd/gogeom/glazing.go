package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

var glassRatios geometry.GlassRatios

var glazingCmd = &cobra.Command{
	Use:   "glazing [file]",
	Short: "Lay out view and daylighting windows on rectangular walls",
	Long: `Split every wall of a document into a view window above the sill and a
daylighting window below the header, each sized to its glass-to-wall ratio,
with optional exterior shading and interior light shelf.`,
	Args: cobra.ExactArgs(1),
	Run:  runGlazing,
}

func init() {
	rootCmd.AddCommand(glazingCmd)

	f := glazingCmd.Flags()
	f.Float64Var(&glassRatios.ViewGlassToWallRatio, "view", 0.3, "View glass to wall ratio")
	f.Float64Var(&glassRatios.DaylightingGlassToWallRatio, "daylighting", 0.0, "Daylighting glass to wall ratio")
	f.Float64Var(&glassRatios.ViewGlassSillHeight, "sill", 0.8, "Sill height of the view window")
	f.Float64Var(&glassRatios.DaylightingGlassHeaderHeight, "header", 0.3, "Distance of the daylighting window from the top of the wall")
	f.Float64Var(&glassRatios.ExteriorShadingProjectionFactor, "shading", 0.0, "Exterior shading projection factor")
	f.Float64Var(&glassRatios.InteriorShelfProjectionFactor, "shelf", 0.0, "Interior light shelf projection factor")
}

func runGlazing(cmd *cobra.Command, args []string) {
	doc := mustLoad(args[0])

	var out [][]geometry.Point3d
	for i, wall := range doc.Loops() {
		layout, ok := geometry.ApplyViewAndDaylightingGlassRatios(glassRatios, wall)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: cannot lay out windows on wall %d\n", i)
			continue
		}
		for _, part := range [][]geometry.Point3d{layout.View, layout.Daylighting, layout.ExteriorShading, layout.InteriorShelf} {
			if len(part) > 0 {
				out = append(out, part)
			}
		}
	}

	writeLoops("glazing", out)
}
