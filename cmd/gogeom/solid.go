package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gogeom/pkg/analysis"
	"github.com/philipparndt/gogeom/pkg/document"
	"github.com/philipparndt/gogeom/pkg/openscad"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
	"github.com/philipparndt/gogeom/pkg/stl"
	"github.com/philipparndt/gogeom/pkg/watcher"
)

var (
	solidWatch   bool
	solidLongest int
	solidExport  string
)

var solidCmd = &cobra.Command{
	Use:   "solid [file]",
	Short: "Check that faces enclose a solid and compute its volume",
	Long: `Run edge matching on the faces of a solid, repair missing collinear vertices,
detect faces with the wrong winding and report both volume formulas.
The file is an STL model, an OpenSCAD source (rendered with the openscad binary)
or a document with a surfaces list.`,
	Args: cobra.ExactArgs(1),
	Run:  runSolid,
}

func init() {
	rootCmd.AddCommand(solidCmd)

	solidCmd.Flags().BoolVarP(&solidWatch, "watch", "w", false, "Re-run whenever the file changes")
	solidCmd.Flags().IntVarP(&solidLongest, "longest", "n", 0, "Also list the N longest edges")
	solidCmd.Flags().StringVar(&solidExport, "scad", "", "Write the faces as an OpenSCAD polyhedron to this file")
}

func isSCAD(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".scad")
}

func loadSTL(filename string) ([]*polyhedron.Surface3d, error) {
	model, err := stl.Parse(filename)
	if err != nil {
		return nil, fmt.Errorf("parsing STL file: %w", err)
	}
	return model.Surfaces(), nil
}

func renderSCAD(filename string) ([]*polyhedron.Surface3d, error) {
	tmp, err := os.CreateTemp("", "gogeom-*.stl")
	if err != nil {
		return nil, err
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	renderer := openscad.NewRenderer(filepath.Dir(filename))
	if err := renderer.RenderToSTL(filepath.Base(filename), tmp.Name()); err != nil {
		return nil, err
	}
	return loadSTL(tmp.Name())
}

func loadSurfaces(filename string) ([]*polyhedron.Surface3d, error) {
	switch {
	case strings.EqualFold(filepath.Ext(filename), ".stl"):
		return loadSTL(filename)
	case isSCAD(filename):
		return renderSCAD(filename)
	}
	doc, err := document.Load(filename)
	if err != nil {
		return nil, err
	}
	return doc.Surfaces3d(), nil
}

func runSolid(cmd *cobra.Command, args []string) {
	filename := args[0]

	if err := reportSolid(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !solidWatch {
			os.Exit(1)
		}
	}
	if !solidWatch {
		return
	}

	fw, err := watcher.NewFileWatcher(cfg.WatchDebounce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	files := []string{filename}
	if isSCAD(filename) {
		deps, err := openscad.NewRenderer(filepath.Dir(filename)).ResolveDependencies(filepath.Base(filename))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		files = deps
	}

	err = fw.Watch(files, func(string) {
		fmt.Println()
		if err := reportSolid(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(os.Stderr, "Watching %s, press Ctrl+C to stop\n", filename)
	fw.Run(ctx)
}

func reportSolid(filename string) error {
	surfaces, err := loadSurfaces(filename)
	if err != nil {
		return err
	}
	if len(surfaces) == 0 {
		return fmt.Errorf("%s has no surfaces", filename)
	}

	result := analysis.AnalyzeSolid(surfaces, cfg.SolidTolerance)

	if solidExport != "" {
		if err := exportSCAD(solidExport, surfaces); err != nil {
			return err
		}
	}

	fmt.Println("Solid Information")
	fmt.Println("=================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Faces:")
	fmt.Printf("  Surfaces: %d\n", result.SurfaceCount)
	fmt.Printf("  Unique vertices: %d\n", result.UniqueVertexCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Checks:")
	fmt.Printf("  Enclosed: %t\n", result.Enclosed)
	fmt.Printf("  Incorrect orientation: %t\n", result.IncorrectOrientation)
	fmt.Printf("  Completely inside out: %t\n", result.InsideOut)
	fmt.Printf("  Added collinear points: %t\n", result.AddedColinearPoints)
	if len(result.OpenEdges) > 0 {
		fmt.Printf("  Open edges: %d\n", len(result.OpenEdges))
		for _, e := range result.OpenEdges {
			fmt.Printf("    %s - %s\n", analysis.FormatPoint(e.Start), analysis.FormatPoint(e.End))
		}
	}
	if len(result.WrongSurfaces) > 0 {
		fmt.Printf("  Wrongly wound: %s\n", strings.Join(result.WrongSurfaces, ", "))
	}
	fmt.Println()

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatPoint(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatPoint(result.BoundingBox.Max))
	fmt.Printf("  Size: %.6f x %.6f x %.6f units\n\n", result.Dimensions.X, result.Dimensions.Y, result.Dimensions.Z)

	fmt.Println("Volume:")
	fmt.Printf("  Pyramid: %.6f cubic units\n", result.Volume)
	fmt.Printf("  Divergence: %.6f cubic units\n", result.DivergenceVolume)
	if !result.Valid() {
		fmt.Println("  (may be invalid)")
	}

	if solidLongest > 0 {
		fmt.Printf("\n%-4s %-35s %-35s %-12s %s\n", "#", "Start", "End", "Length", "Surface")
		for i, e := range analysis.FindLongestEdges(result, solidLongest) {
			fmt.Printf("%-4d %-35s %-35s %-12.6f %s\n", i+1, analysis.FormatPoint(e.Start), analysis.FormatPoint(e.End), e.Length, e.Surface)
		}
	}
	return nil
}

func exportSCAD(filename string, surfaces []*polyhedron.Surface3d) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := openscad.WritePolyhedron(f, surfaces, cfg.SolidTolerance); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
