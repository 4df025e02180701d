package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/pkg/analysis"
	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/intersection"
)

var intersectSubtract bool

var intersectCmd = &cobra.Command{
	Use:   "intersect [file]",
	Short: "Intersect the first two polygons of a document",
	Long: `Split the first two polygons into their shared part and the remainders.
With --subtract every further polygon is removed from the first one instead.`,
	Args: cobra.ExactArgs(1),
	Run:  runIntersect,
}

func init() {
	rootCmd.AddCommand(intersectCmd)

	intersectCmd.Flags().BoolVar(&intersectSubtract, "subtract", false, "Subtract the other polygons from the first")
}

func runIntersect(cmd *cobra.Command, args []string) {
	doc := mustLoad(args[0])
	loops := doc.Loops()
	if len(loops) < 2 {
		fmt.Fprintf(os.Stderr, "Error: need at least two polygons, got %d\n", len(loops))
		os.Exit(1)
	}

	if intersectSubtract {
		pieces := intersection.Subtract(loops[0], loops[1:], cfg.Tolerance)
		writeLoops("difference", pieces)
		return
	}

	result := intersection.Intersect(loops[0], loops[1], cfg.Tolerance)
	if result == nil {
		fmt.Println("# polygons do not intersect")
		return
	}

	out := [][]geometry.Point3d{result.Polygon1}
	out = append(out, result.NewPolygons1...)
	out = append(out, result.NewPolygons2...)
	writeLoops("piece", out)

	shared, _ := geometry.GetArea(result.Polygon1)
	fmt.Printf("# shared: %s\n", analysis.FormatMeasurement(shared, "square units"))
	fmt.Printf("# polygon 1: %s in %d pieces\n", analysis.FormatMeasurement(result.Area1(), "square units"), 1+len(result.NewPolygons1))
	fmt.Printf("# polygon 2: %s in %d pieces\n", analysis.FormatMeasurement(result.Area2(), "square units"), 1+len(result.NewPolygons2))
}
