package polyhedron

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

func p3(x, y, z float64) geometry.Point3d {
	return geometry.NewPoint3d(x, y, z)
}

// boxFaces returns the outward wound faces of an axis aligned box at the origin
func boxFaces(dx, dy, dz float64) map[string][]geometry.Point3d {
	return map[string][]geometry.Point3d{
		"bottom": {p3(0, 0, 0), p3(0, dy, 0), p3(dx, dy, 0), p3(dx, 0, 0)},
		"top":    {p3(0, 0, dz), p3(dx, 0, dz), p3(dx, dy, dz), p3(0, dy, dz)},
		"front":  {p3(0, 0, 0), p3(dx, 0, 0), p3(dx, 0, dz), p3(0, 0, dz)},
		"back":   {p3(0, dy, 0), p3(0, dy, dz), p3(dx, dy, dz), p3(dx, dy, 0)},
		"left":   {p3(0, 0, 0), p3(0, 0, dz), p3(0, dy, dz), p3(0, dy, 0)},
		"right":  {p3(dx, 0, 0), p3(dx, dy, 0), p3(dx, dy, dz), p3(dx, 0, dz)},
	}
}

var faceOrder = []string{"bottom", "top", "front", "back", "left", "right"}

func surfaces(faces map[string][]geometry.Point3d, order []string) []*Surface3d {
	var result []*Surface3d
	for i, name := range order {
		result = append(result, NewSurface3d(faces[name], name, i))
	}
	return result
}

func TestCube(t *testing.T) {
	p := New(surfaces(boxFaces(1, 1, 1), faceOrder))

	assert.True(t, p.IsEnclosedVolume())
	assert.False(t, p.HasAnySurfaceWithIncorrectOrientation())
	assert.False(t, p.IsCompletelyInsideOut())
	assert.False(t, p.HasAddedColinearPoints())
	assert.InDelta(t, 1.0, p.PolyhedronVolume(), 1e-6)
	assert.InDelta(t, 1.0, p.CalcDivergenceTheoremVolume(), 1e-6)
	assert.InDelta(t, 6.0, p.SurfaceArea(), 1e-12)
	assert.Equal(t, 6, p.NumSurfaces())
	assert.Len(t, p.UniqueVertices(), 8)
	assert.Empty(t, p.EdgesNotTwo())
	assert.Empty(t, p.FindSurfacesWithIncorrectOrientation())

	for _, s := range p.Surfaces() {
		for _, e := range s.Edges() {
			assert.Equal(t, 2, e.Count())
			assert.False(t, e.Conflicted())
		}
	}
}

func TestCubeAwayFromOrigin(t *testing.T) {
	move := geometry.Translation(geometry.NewVector3d(10, -5, 3))
	faces := boxFaces(2, 3, 4)
	for name, f := range faces {
		faces[name] = move.ApplyAll(f)
	}
	p := New(surfaces(faces, faceOrder))
	assert.True(t, p.IsEnclosedVolume())
	assert.InDelta(t, 24.0, p.PolyhedronVolume(), 1e-6)
	assert.InDelta(t, 24.0, p.CalcDivergenceTheoremVolume(), 1e-6)
}

func TestCubeInsideOut(t *testing.T) {
	faces := boxFaces(1, 1, 1)
	for name, f := range faces {
		faces[name] = geometry.Reverse(f)
	}
	p := New(surfaces(faces, faceOrder))

	assert.True(t, p.IsEnclosedVolume())
	assert.True(t, p.IsCompletelyInsideOut())
	assert.True(t, p.HasAnySurfaceWithIncorrectOrientation())
	assert.InDelta(t, 1.0, p.PolyhedronVolume(), 1e-6)
	assert.InDelta(t, 1.0, p.CalcDivergenceTheoremVolume(), 1e-6)
	assert.Len(t, p.FindSurfacesWithIncorrectOrientation(), 6)
}

func TestCubeOneFaceReversed(t *testing.T) {
	faces := boxFaces(1, 1, 1)
	faces["top"] = geometry.Reverse(faces["top"])
	p := New(surfaces(faces, faceOrder))

	assert.True(t, p.IsEnclosedVolume())
	assert.True(t, p.HasAnySurfaceWithIncorrectOrientation())
	assert.False(t, p.IsCompletelyInsideOut())

	wrong := p.FindSurfacesWithIncorrectOrientation()
	require.Len(t, wrong, 1)
	assert.Equal(t, "top", wrong[0].Name)
}

func TestOpenBox(t *testing.T) {
	p := New(surfaces(boxFaces(1, 1, 1), faceOrder[1:]))

	assert.False(t, p.IsEnclosedVolume())
	assert.False(t, p.HasAddedColinearPoints())
	assert.Len(t, p.EdgesNotTwo(), 4)
}

func TestOpenBoxBelowOrigin(t *testing.T) {
	move := geometry.Translation(geometry.NewVector3d(0, 0, -5))
	faces := boxFaces(1, 1, 1)
	for name, f := range faces {
		faces[name] = move.ApplyAll(f)
	}
	p := New(surfaces(faces, faceOrder[1:]))

	assert.False(t, p.IsEnclosedVolume())
	assert.False(t, p.IsCompletelyInsideOut())
	assert.False(t, p.HasAnySurfaceWithIncorrectOrientation())
	assert.Empty(t, p.FindSurfacesWithIncorrectOrientation())
}

// splitTopBox is a dx x 1 x 1 box whose top is made of unit squares, so the
// long top edges of front and back miss dx-1 vertices each
func splitTopBox(dx int) []*Surface3d {
	faces := boxFaces(float64(dx), 1, 1)
	delete(faces, "top")
	order := []string{"bottom", "front", "back", "left", "right"}
	for i := 0; i < dx; i++ {
		x0, x1 := float64(i), float64(i+1)
		name := fmt.Sprintf("top%d", i)
		faces[name] = []geometry.Point3d{p3(x0, 0, 1), p3(x1, 0, 1), p3(x1, 1, 1), p3(x0, 1, 1)}
		order = append(order, name)
	}
	return surfaces(faces, order)
}

func TestInsertColinearVerticesCap(t *testing.T) {
	p := &Polyhedron{surfaces: splitTopBox(3), tol: DefaultTolerance}
	unique := p.UniqueVertices()
	require.Len(t, unique, 12)
	front := p.surfaces[1]
	require.Equal(t, "front", front.Name)

	inserted, capped := p.insertColinearVertices(front, unique, 1)
	assert.Equal(t, 1, inserted)
	assert.True(t, capped)
	assert.Len(t, front.Vertices, 5)

	inserted, capped = p.insertColinearVertices(front, unique, len(unique))
	assert.Equal(t, 1, inserted)
	assert.False(t, capped)
	assert.Len(t, front.Vertices, 6)

	inserted, capped = p.insertColinearVertices(front, unique, 0)
	assert.Zero(t, inserted)
	assert.False(t, capped)
}

func TestColinearRepairSeveralVertices(t *testing.T) {
	p := New(splitTopBox(3))

	assert.True(t, p.HasAddedColinearPoints())
	assert.True(t, p.IsEnclosedVolume())
	assert.InDelta(t, 3.0, p.PolyhedronVolume(), 1e-6)
	for _, s := range p.Surfaces() {
		if s.Name == "front" || s.Name == "back" {
			assert.Len(t, s.Vertices, 6)
		}
	}
}

func TestColinearRepair(t *testing.T) {
	faces := boxFaces(2, 1, 1)
	delete(faces, "top")
	faces["topA"] = []geometry.Point3d{p3(0, 0, 1), p3(1, 0, 1), p3(1, 1, 1), p3(0, 1, 1)}
	faces["topB"] = []geometry.Point3d{p3(1, 0, 1), p3(2, 0, 1), p3(2, 1, 1), p3(1, 1, 1)}

	p := New(surfaces(faces, []string{"bottom", "topA", "topB", "front", "back", "left", "right"}))

	assert.True(t, p.HasAddedColinearPoints())
	assert.True(t, p.IsEnclosedVolume())
	assert.False(t, p.HasAnySurfaceWithIncorrectOrientation())
	assert.InDelta(t, 2.0, p.PolyhedronVolume(), 1e-6)

	created := 0
	for _, s := range p.Surfaces() {
		for _, e := range s.Edges() {
			if e.Created() {
				created++
			}
		}
		if s.Name == "front" || s.Name == "back" {
			assert.Len(t, s.Vertices, 5)
		}
	}
	assert.Equal(t, 4, created)
}

func TestSlit(t *testing.T) {
	faces := boxFaces(1, 1, 1)
	// the top is cut open by a slit from the corner to a square hole, which is plugged by its own face
	faces["top"] = []geometry.Point3d{
		p3(0, 0, 1), p3(1, 0, 1), p3(1, 1, 1), p3(0, 1, 1), p3(0, 0, 1),
		p3(0.25, 0.25, 1), p3(0.25, 0.75, 1), p3(0.75, 0.75, 1), p3(0.75, 0.25, 1), p3(0.25, 0.25, 1),
	}
	faces["plug"] = []geometry.Point3d{p3(0.25, 0.25, 1), p3(0.75, 0.25, 1), p3(0.75, 0.75, 1), p3(0.25, 0.75, 1)}

	p := New(surfaces(faces, append([]string{"plug"}, faceOrder...)))

	assert.True(t, p.IsEnclosedVolume())
	assert.False(t, p.HasAnySurfaceWithIncorrectOrientation())
	assert.InDelta(t, 1.0, p.PolyhedronVolume(), 1e-6)
}

func TestEdgeEquality(t *testing.T) {
	a := newEdge(p3(0, 0, 0), p3(1, 0, 0), 0)
	b := newEdge(p3(1.01, 0, 0), p3(0, 0, 0.001), 1)
	c := newEdge(p3(0, 0, 0), p3(1, 0, 0), 2)

	assert.True(t, a.equal(b, DefaultTolerance))
	assert.True(t, a.reverseEqual(b, DefaultTolerance))
	assert.True(t, a.equal(c, DefaultTolerance))
	assert.False(t, a.reverseEqual(c, DefaultTolerance))
	assert.False(t, a.equal(newEdge(p3(0, 0, 0), p3(1, 0.1, 0), 3), DefaultTolerance))
}
