package triangulate

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, size float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0}}
}

func totalArea(triangles []Triangle) float64 {
	sum := 0.0
	for _, t := range triangles {
		sum += t.Area()
	}
	return sum
}

func assertCounterClockwise(t *testing.T, triangles []Triangle) {
	t.Helper()
	for _, tri := range triangles {
		assert.Greater(t, tri.Area(), 0.0, "triangle %v", tri)
	}
}

// comb has several downward and upward teeth so the sweep meets split and merge vertices
func comb() orb.Ring {
	return orb.Ring{
		{0, 0}, {1, 1}, {2, 0}, {3, 1}, {4, 0}, {4, 3},
		{3, 2}, {2, 3}, {1, 2}, {0, 3}, {0, 0},
	}
}

func TestTriangulateSquare(t *testing.T) {
	triangles, err := Triangulate(square(0, 0, 2), nil)
	require.NoError(t, err)
	assert.Len(t, triangles, 2)
	assert.InDelta(t, 4.0, totalArea(triangles), 1e-12)
	assertCounterClockwise(t, triangles)
}

func TestTriangulateClockwiseInput(t *testing.T) {
	r := square(0, 0, 2)
	cw := orb.Ring{r[0], r[3], r[2], r[1], r[0]}
	triangles, err := Triangulate(cw, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, totalArea(triangles), 1e-12)
	assertCounterClockwise(t, triangles)
}

func TestTriangulateWithHole(t *testing.T) {
	triangles, err := Triangulate(square(0, 0, 4), []orb.Ring{square(1.5, 1.5, 1)})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, totalArea(triangles), 1e-9)
	assertCounterClockwise(t, triangles)
}

func TestTriangulateTwoHoles(t *testing.T) {
	holes := []orb.Ring{square(1, 1, 1), square(5, 1, 1)}
	outer := orb.Ring{{0, 0}, {8, 0}, {8, 3}, {0, 3}, {0, 0}}
	triangles, err := Triangulate(outer, holes)
	require.NoError(t, err)
	assert.InDelta(t, 22.0, totalArea(triangles), 1e-9)
}

func TestTriangulateHoleFillsPolygon(t *testing.T) {
	_, err := Triangulate(square(0, 0, 4), []orb.Ring{square(0, 0, 4)})
	assert.True(t, errors.Is(err, ErrDegenerate))

	_, err = Triangulate(orb.Ring{{0, 0}, {1, 0}, {2, 0}, {0, 0}}, nil)
	assert.True(t, errors.Is(err, ErrDegenerate))
}

func TestEarClipConcave(t *testing.T) {
	triangles, err := EarClip(comb(), nil)
	require.NoError(t, err)
	assert.Len(t, triangles, 8)
	assert.InDelta(t, 8.0, totalArea(triangles), 1e-12)
	assertCounterClockwise(t, triangles)
}

func TestMonotone(t *testing.T) {
	triangles, err := Monotone(comb(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, totalArea(triangles), 1e-12)
	assertCounterClockwise(t, triangles)

	triangles, err = Monotone(square(0, 0, 4), []orb.Ring{square(1.5, 1.5, 1)})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, totalArea(triangles), 1e-9)
	assertCounterClockwise(t, triangles)
}

func TestHertelMehlhorn(t *testing.T) {
	pieces, err := ConvexPartition(square(0, 0, 2), nil)
	require.NoError(t, err)
	require.Len(t, pieces, 1)
	assert.Len(t, pieces[0], 5)

	lshape := orb.Ring{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}, {0, 0}}
	pieces, err = ConvexPartition(lshape, nil)
	require.NoError(t, err)
	assert.Len(t, pieces, 2)

	area := 0.0
	for _, p := range pieces {
		assert.True(t, isConvex(clean(p)))
		area += signedArea(clean(p))
	}
	assert.InDelta(t, 3.0, area, 1e-12)
}

func TestConvexPartitionWithHole(t *testing.T) {
	pieces, err := ConvexPartition(square(0, 0, 4), []orb.Ring{square(1.5, 1.5, 1)})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(pieces), 4)

	area := 0.0
	for _, p := range pieces {
		area += signedArea(clean(p))
	}
	assert.InDelta(t, 15.0, area, 1e-9)
}
