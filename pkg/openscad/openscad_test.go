package openscad

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
	"github.com/philipparndt/gogeom/pkg/stl"
)

func tetrahedron() []*polyhedron.Surface3d {
	o := geometry.NewPoint3d(0, 0, 0)
	a := geometry.NewPoint3d(1, 0, 0)
	b := geometry.NewPoint3d(0, 1, 0)
	c := geometry.NewPoint3d(0, 0, 1)
	return []*polyhedron.Surface3d{
		polyhedron.NewSurface3d([]geometry.Point3d{o, b, a}, "bottom", 0),
		polyhedron.NewSurface3d([]geometry.Point3d{o, a, c}, "front", 1),
		polyhedron.NewSurface3d([]geometry.Point3d{o, c, b}, "left", 2),
		polyhedron.NewSurface3d([]geometry.Point3d{a, b, c}, "slope", 3),
	}
}

func TestWritePolyhedron(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePolyhedron(&buf, tetrahedron(), polyhedron.DefaultTolerance))

	expected := `polyhedron(
  points = [
    [0, 0, 0],
    [0, 1, 0],
    [1, 0, 0],
    [0, 0, 1]
  ],
  faces = [
    [2, 1, 0],
    [3, 2, 0],
    [1, 3, 0],
    [3, 1, 2]
  ]
);
`
	assert.Equal(t, expected, buf.String())
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("main.scad", "use <lib/shapes.scad>\n// include <ignored.scad>\ninclude <./common.scad>\ncube(1);\n")
	write("lib/shapes.scad", "include <../common.scad>\n")
	write("common.scad", "$fn = 32;\n")

	deps, err := NewRenderer(dir).ResolveDependencies("main.scad")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "main.scad"),
		filepath.Join(dir, "lib", "shapes.scad"),
		filepath.Join(dir, "common.scad"),
	}, deps)

	_, err = NewRenderer(dir).ResolveDependencies("missing.scad")
	assert.Error(t, err)
}

func TestRenderToSTL(t *testing.T) {
	if _, err := exec.LookPath("openscad"); err != nil {
		t.Skip("openscad not installed")
	}
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, WritePolyhedron(&buf, tetrahedron(), polyhedron.DefaultTolerance))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tetra.scad"), buf.Bytes(), 0o644))

	out := filepath.Join(dir, "tetra.stl")
	require.NoError(t, NewRenderer(dir).RenderToSTL("tetra.scad", out))

	model, err := stl.Parse(out)
	require.NoError(t, err)
	solid := polyhedron.New(model.Surfaces())
	assert.True(t, solid.IsEnclosedVolume())
	assert.InDelta(t, 1.0/6, solid.PolyhedronVolume(), 1e-6)
}
