package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
)

func p3(x, y, z float64) geometry.Point3d {
	return geometry.NewPoint3d(x, y, z)
}

func box(dx, dy, dz float64) []*polyhedron.Surface3d {
	faces := [][]geometry.Point3d{
		{p3(0, 0, 0), p3(0, dy, 0), p3(dx, dy, 0), p3(dx, 0, 0)},
		{p3(0, 0, dz), p3(dx, 0, dz), p3(dx, dy, dz), p3(0, dy, dz)},
		{p3(0, 0, 0), p3(dx, 0, 0), p3(dx, 0, dz), p3(0, 0, dz)},
		{p3(0, dy, 0), p3(0, dy, dz), p3(dx, dy, dz), p3(dx, dy, 0)},
		{p3(0, 0, 0), p3(0, 0, dz), p3(0, dy, dz), p3(0, dy, 0)},
		{p3(dx, 0, 0), p3(dx, dy, 0), p3(dx, dy, dz), p3(dx, 0, dz)},
	}
	names := []string{"bottom", "top", "front", "back", "left", "right"}
	var surfaces []*polyhedron.Surface3d
	for i, f := range faces {
		surfaces = append(surfaces, polyhedron.NewSurface3d(f, names[i], i))
	}
	return surfaces
}

func TestAnalyzeSolid(t *testing.T) {
	report := AnalyzeSolid(box(3, 2, 1), polyhedron.DefaultTolerance)

	assert.True(t, report.Valid())
	assert.True(t, report.Enclosed)
	assert.False(t, report.IncorrectOrientation)
	assert.InDelta(t, 6.0, report.Volume, 1e-9)
	assert.InDelta(t, 6.0, report.DivergenceVolume, 1e-9)
	assert.InDelta(t, 22.0, report.SurfaceArea, 1e-9)
	assert.Equal(t, 6, report.SurfaceCount)
	assert.Equal(t, 8, report.UniqueVertexCount)
	assert.Equal(t, geometry.NewVector3d(3, 2, 1), report.Dimensions)
	assert.Empty(t, report.OpenEdges)
	assert.Empty(t, report.WrongSurfaces)

	assert.Equal(t, 24, report.EdgeCount)
	assert.InDelta(t, 1.0, report.MinEdgeLength, 1e-12)
	assert.InDelta(t, 3.0, report.MaxEdgeLength, 1e-12)
	assert.InDelta(t, 2.0, report.AvgEdgeLength, 1e-12)
}

func TestAnalyzeBrokenSolid(t *testing.T) {
	surfaces := box(1, 1, 1)
	surfaces[1] = polyhedron.NewSurface3d(geometry.Reverse(surfaces[1].Vertices), "top", 1)

	report := AnalyzeSolid(surfaces, polyhedron.DefaultTolerance)
	assert.False(t, report.Valid())
	assert.Equal(t, []string{"top"}, report.WrongSurfaces)

	report = AnalyzeSolid(box(1, 1, 1)[1:], polyhedron.DefaultTolerance)
	assert.False(t, report.Enclosed)
	assert.Len(t, report.OpenEdges, 4)
}

func TestEdgeQueries(t *testing.T) {
	report := AnalyzeSolid(box(3, 2, 1), polyhedron.DefaultTolerance)

	longest := FindLongestEdges(report, 2)
	require.Len(t, longest, 2)
	assert.InDelta(t, 3.0, longest[0].Length, 1e-12)

	shortest := FindShortestEdges(report, 100)
	assert.Len(t, shortest, 24)
	assert.InDelta(t, 1.0, shortest[0].Length, 1e-12)

	assert.Len(t, FindEdgesByLength(report, 1.5, 2.5), 8)
	assert.Equal(t, "(1.000000, 2.000000, 3.000000)", FormatPoint(p3(1, 2, 3)))
	assert.Equal(t, "2.500000 units", FormatMeasurement(2.5, ""))
}
