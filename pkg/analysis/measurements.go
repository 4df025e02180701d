// Package analysis builds reports about solids assembled from planar faces.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
)

// EdgeInfo contains information about one face edge
type EdgeInfo struct {
	Start   geometry.Point3d
	End     geometry.Point3d
	Length  float64
	Surface string
}

// SolidReport collects the enclosure, orientation and size properties of a solid
type SolidReport struct {
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3d
	SurfaceArea float64

	Volume           float64
	DivergenceVolume float64

	SurfaceCount         int
	UniqueVertexCount    int
	Enclosed             bool
	IncorrectOrientation bool
	InsideOut            bool
	AddedColinearPoints  bool
	OpenEdges            []EdgeInfo
	WrongSurfaces        []string

	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// Valid reports whether the volume can be trusted
func (r *SolidReport) Valid() bool {
	return r.Enclosed && (!r.IncorrectOrientation || r.InsideOut)
}

// AnalyzeSolid runs edge matching with tol and measures the solid
func AnalyzeSolid(surfaces []*polyhedron.Surface3d, tol float64) *SolidReport {
	p := polyhedron.NewWithTolerance(surfaces, tol)

	result := &SolidReport{
		BoundingBox:          geometry.BoundingBoxOf(p.UniqueVertices()),
		SurfaceArea:          p.SurfaceArea(),
		Volume:               p.PolyhedronVolume(),
		DivergenceVolume:     p.CalcDivergenceTheoremVolume(),
		SurfaceCount:         p.NumSurfaces(),
		UniqueVertexCount:    len(p.UniqueVertices()),
		Enclosed:             p.IsEnclosedVolume(),
		IncorrectOrientation: p.HasAnySurfaceWithIncorrectOrientation(),
		InsideOut:            p.IsCompletelyInsideOut(),
		AddedColinearPoints:  p.HasAddedColinearPoints(),
		AllEdges:             make([]EdgeInfo, 0),
	}
	result.Dimensions = result.BoundingBox.Size()

	for _, e := range p.EdgesNotTwo() {
		result.OpenEdges = append(result.OpenEdges, EdgeInfo{
			Start:  e.Start(),
			End:    e.End(),
			Length: e.Start().Distance(e.End()),
		})
	}
	for _, s := range p.FindSurfacesWithIncorrectOrientation() {
		result.WrongSurfaces = append(result.WrongSurfaces, s.Name)
	}

	// Collect all edges
	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, s := range p.Surfaces() {
		for _, e := range s.Edges() {
			length := e.Start().Distance(e.End())
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:   e.Start(),
				End:     e.End(),
				Length:  length,
				Surface: s.Name,
			})

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *SolidReport, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *SolidReport, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *SolidReport, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *SolidReport, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// FormatPoint formats a 3D point
func FormatPoint(p geometry.Point3d) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", p.X, p.Y, p.Z)
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}
