package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/intersection"
)

var joinBuffer float64

var joinCmd = &cobra.Command{
	Use:   "join [file]",
	Short: "Join touching or overlapping polygons",
	Long: `Group the polygons of a document into connected sets and join each set.
With --buffer, polygons closer than twice the buffer are joined too.`,
	Args: cobra.ExactArgs(1),
	Run:  runJoin,
}

func init() {
	rootCmd.AddCommand(joinCmd)

	joinCmd.Flags().Float64Var(&joinBuffer, "buffer", 0.0, "Grow polygons by this distance before joining")
}

func runJoin(cmd *cobra.Command, args []string) {
	doc := mustLoad(args[0])

	var joined [][]geometry.Point3d
	if joinBuffer > 0 {
		joined = intersection.JoinAllWithBuffer(doc.Loops(), joinBuffer, cfg.Tolerance)
	} else {
		joined = intersection.JoinAll(doc.Loops(), cfg.Tolerance)
	}

	writeLoops("joined", joined)
	fmt.Printf("# %d polygons joined into %d\n", len(doc.Polygons), len(joined))
}
