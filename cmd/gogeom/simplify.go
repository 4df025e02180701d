package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/intersection"
)

var (
	simplifyKeepCollinear bool
	simplifySpikes        bool
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [file]",
	Short: "Clean up face coordinate polygons",
	Long: `Merge near-duplicate vertices, drop zero-width spikes and collinear vertices,
and start every polygon at its upper left corner. With --spikes the polygons are
also opened by the configured spike offset to remove narrow spikes.`,
	Args: cobra.ExactArgs(1),
	Run:  runSimplify,
}

func init() {
	rootCmd.AddCommand(simplifyCmd)

	simplifyCmd.Flags().BoolVar(&simplifyKeepCollinear, "keep-collinear", false, "Keep input vertices lying on the outline")
	simplifyCmd.Flags().BoolVar(&simplifySpikes, "spikes", false, "Remove narrow spikes by shrinking and growing")
}

func runSimplify(cmd *cobra.Command, args []string) {
	doc := mustLoad(args[0])

	var result [][]geometry.Point3d
	for i, loop := range doc.Loops() {
		simplified := intersection.Simplify(loop, !simplifyKeepCollinear, cfg.Tolerance)
		if simplified != nil && simplifySpikes {
			simplified = intersection.RemoveSpikesEx(simplified, cfg.Tolerance, cfg.SpikeOffset)
		}
		if simplified == nil {
			slog.Warn("dropping degenerate polygon", "index", i)
			continue
		}
		result = append(result, simplified)
	}

	writeLoops("simplified", result)
	fmt.Printf("# %d of %d polygons kept\n", len(result), len(doc.Polygons))
}
