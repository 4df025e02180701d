package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/pkg/analysis"
)

var areaCmd = &cobra.Command{
	Use:   "area [file]",
	Short: "Measure the polygons of a document",
	Long:  "Show gross and net area, perimeter, centroid and outward normal of every polygon.",
	Args:  cobra.ExactArgs(1),
	Run:   runArea,
}

func init() {
	rootCmd.AddCommand(areaCmd)
}

func runArea(cmd *cobra.Command, args []string) {
	doc := mustLoad(args[0])

	for i, entry := range doc.Polygons {
		p := entry.Polygon3d()
		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("polygon-%d", i)
		}

		fmt.Printf("%s\n", name)
		fmt.Printf("  Vertices: %d, holes: %d\n", len(p.Outer()), len(p.Holes()))
		fmt.Printf("  Gross area: %s\n", analysis.FormatMeasurement(p.GrossArea(), "square units"))
		fmt.Printf("  Net area: %s\n", analysis.FormatMeasurement(p.NetArea(), "square units"))
		fmt.Printf("  Perimeter: %s\n", analysis.FormatMeasurement(p.Perimeter(), ""))
		if c, ok := p.Centroid(); ok {
			fmt.Printf("  Centroid: %s\n", analysis.FormatPoint(c))
		} else {
			fmt.Println("  Centroid: degenerate polygon")
		}
		if n, ok := p.OuterNormal(); ok {
			fmt.Printf("  Normal: %s\n", n)
		}
	}
}
