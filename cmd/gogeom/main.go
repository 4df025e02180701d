package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/internal/config"
	"github.com/philipparndt/gogeom/pkg/document"
	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/version"
)

var (
	configPath string
	verbose    bool

	// cfg is loaded before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gogeom",
	Short: "Planar polygon algebra and solid validation on the command line",
	Long: `gogeom runs the polygon engine on YAML documents: areas, simplification,
joins, intersections and triangulation of planar polygons, glazing layouts for
rectangular walls, and enclosure and volume checks for solids given as faces
or STL files.

Polygons for simplify, join and intersect are face coordinates: z=0 and
clockwise when seen from +z.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $HOME/.gogeom.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// mustLoad reads a polygon document or exits
func mustLoad(filename string) *document.Document {
	doc, err := document.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}
	return doc
}

// writeLoops prints loops as a YAML document on stdout
func writeLoops(prefix string, loops [][]geometry.Point3d) {
	if err := document.Write(os.Stdout, document.FromLoops(prefix, loops)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing document: %v\n", err)
		os.Exit(1)
	}
}
