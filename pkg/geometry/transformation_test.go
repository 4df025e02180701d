package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPoint(t *testing.T, expected, actual Point3d, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "x of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "y of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "z of %v", actual)
}

func TestRotation(t *testing.T) {
	r, ok := Rotation(NewVector3d(0, 0, 1), math.Pi/2)
	require.True(t, ok)
	assertPoint(t, NewPoint3d(0, 1, 0), r.Apply(NewPoint3d(1, 0, 0)), 1e-12)

	_, ok = Rotation(NewVector3d(0, 0, 0), math.Pi/2)
	assert.False(t, ok)
}

func TestTranslationAndComposition(t *testing.T) {
	tr := Translation(NewVector3d(1, 2, 3))
	assertPoint(t, NewPoint3d(1, 2, 3), tr.Apply(NewPoint3d(0, 0, 0)), 1e-12)

	v := tr.ApplyVector(NewVector3d(1, 0, 0))
	assert.Equal(t, NewVector3d(1, 0, 0), v)

	r, _ := Rotation(NewVector3d(0, 0, 1), math.Pi/2)
	composed := Translation(NewVector3d(1, 0, 0)).Mul(r)
	assertPoint(t, NewPoint3d(1, 1, 0), composed.Apply(NewPoint3d(1, 0, 0)), 1e-12)

	back := composed.Inverse().Apply(NewPoint3d(1, 1, 0))
	assertPoint(t, NewPoint3d(1, 0, 0), back, 1e-12)
}

func TestAlignFaceWall(t *testing.T) {
	wall := southWall()
	tr, ok := AlignFace(wall)
	require.True(t, ok)

	face := tr.Inverse().ApplyAll(wall)
	expected := []Point3d{
		NewPoint3d(0, 3, 0),
		NewPoint3d(0, 0, 0),
		NewPoint3d(4, 0, 0),
		NewPoint3d(4, 3, 0),
	}
	for i := range expected {
		assertPoint(t, expected[i], face[i], 1e-9)
	}

	n, ok := GetOutwardNormal(face)
	require.True(t, ok)
	assert.InDelta(t, 1.0, n.Z, 1e-9)

	world := tr.ApplyAll(face)
	for i := range wall {
		assertPoint(t, wall[i], world[i], 1e-9)
	}
}

func TestAlignFaceFloor(t *testing.T) {
	// floor faces down
	floor := Reverse(unitSquare())
	tr, ok := AlignFace(floor)
	require.True(t, ok)

	face := tr.Inverse().ApplyAll(floor)
	for _, p := range face {
		assert.InDelta(t, 0.0, p.Z, 1e-9)
	}
	n, ok := GetOutwardNormal(face)
	require.True(t, ok)
	assert.InDelta(t, 1.0, n.Z, 1e-9)

	_, ok = AlignFace([]Point3d{NewPoint3d(0, 0, 0), NewPoint3d(1, 0, 0), NewPoint3d(2, 0, 0)})
	assert.False(t, ok)
}
