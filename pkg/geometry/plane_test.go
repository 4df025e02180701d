package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneFromPoints(t *testing.T) {
	p, err := NewPlaneFromPoints(unitSquare())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, p.A(), 1e-9)
	assert.InDelta(t, 0.0, p.B(), 1e-9)
	assert.InDelta(t, 1.0, p.C(), 1e-9)
	assert.InDelta(t, 0.0, p.D(), 1e-9)

	// clockwise winding flips the normal
	p, err = NewPlaneFromPoints(Reverse(unitSquare()))
	require.NoError(t, err)
	assert.InDelta(t, -1.0, p.C(), 1e-9)
}

func TestPlaneFromWallPoints(t *testing.T) {
	wall := southWall()
	wall = append(wall, NewPoint3d(2, 0, 3))

	p, err := NewPlaneFromPoints(wall)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, p.B(), 1e-9)
	assert.InDelta(t, 0.0, p.D(), 1e-9)
	for _, v := range wall {
		assert.True(t, p.PointOnPlane(v, 1e-9))
	}
}

func TestPlaneFromNoisyPoints(t *testing.T) {
	points := []Point3d{
		NewPoint3d(0, 0, 5.0001),
		NewPoint3d(4, 0, 4.9999),
		NewPoint3d(4, 4, 5.0001),
		NewPoint3d(2, 6, 5),
		NewPoint3d(0, 4, 4.9999),
	}
	p, err := NewPlaneFromPoints(points)
	require.NoError(t, err)

	n := p.OutwardNormal()
	assert.InDelta(t, 1.0, n.Length(), 1e-4)
	assert.InDelta(t, 1.0, p.C(), 1e-4)
	assert.InDelta(t, -5.0, p.D(), 1e-3)
}

func TestPlaneConstructionFailures(t *testing.T) {
	_, err := NewPlaneFromPoints(unitSquare()[:2])
	assert.True(t, errors.Is(err, ErrTooFewPoints))

	line := []Point3d{NewPoint3d(0, 0, 0), NewPoint3d(1, 0, 0), NewPoint3d(2, 0, 0), NewPoint3d(3, 0, 0)}
	_, err = NewPlaneFromPoints(line)
	assert.True(t, errors.Is(err, ErrDegeneratePoints))

	_, err = NewPlaneFromPoints(line[:3])
	assert.True(t, errors.Is(err, ErrDegeneratePoints))

	_, err = NewPlane(NewPoint3d(0, 0, 0), NewVector3d(0, 0, 0))
	assert.True(t, errors.Is(err, ErrZeroNormal))

	assert.Panics(t, func() { MustPlane(line) })
}

func TestPlaneRayIntersection(t *testing.T) {
	p, err := NewPlane(NewPoint3d(0, 0, 0), NewVector3d(0, 0, 2))
	require.NoError(t, err)

	hit, ok := p.RayIntersection(NewPoint3d(1, 1, 5), NewVector3d(0, 0, -1), true)
	require.True(t, ok)
	assert.InDelta(t, 1.0, hit.X, 1e-12)
	assert.InDelta(t, 1.0, hit.Y, 1e-12)
	assert.InDelta(t, 0.0, hit.Z, 1e-12)

	// travelling along the normal is rejected only when the direction is enforced
	_, ok = p.RayIntersection(NewPoint3d(0, 0, -5), NewVector3d(0, 0, 1), false)
	assert.True(t, ok)
	_, ok = p.RayIntersection(NewPoint3d(0, 0, -5), NewVector3d(0, 0, 1), true)
	assert.False(t, ok)

	// parallel
	_, ok = p.RayIntersection(NewPoint3d(0, 0, 5), NewVector3d(1, 0, 0), false)
	assert.False(t, ok)

	// behind the origin
	_, ok = p.RayIntersection(NewPoint3d(0, 0, 5), NewVector3d(0, 0, 1), false)
	assert.False(t, ok)
}

func TestPlaneEquality(t *testing.T) {
	p1, err := NewPlane(NewPoint3d(0, 0, 1), NewVector3d(0, 0, 1))
	require.NoError(t, err)
	p2, err := NewPlaneFromPoints([]Point3d{NewPoint3d(0, 0, 1), NewPoint3d(1, 0, 1), NewPoint3d(1, 1, 1)})
	require.NoError(t, err)

	assert.True(t, p1.Equal(p2, 1e-6))
	assert.False(t, p1.ReverseEqual(p2, 1e-6))
	assert.True(t, p1.ReverseEqual(p2.Reversed(), 1e-6))
	assert.True(t, p1.Parallel(p2.Reversed(), 1e-6))

	proj := p1.Project(NewPoint3d(1, 2, 3))
	assert.InDelta(t, 1.0, proj.X, 1e-12)
	assert.InDelta(t, 2.0, proj.Y, 1e-12)
	assert.InDelta(t, 1.0, proj.Z, 1e-12)
	assert.InDelta(t, 2.0, p1.Distance(NewPoint3d(1, 2, 3)), 1e-12)
}
