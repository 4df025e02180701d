package stl

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gogeom/pkg/geometry"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
)

// tetrahedron with outward wound facets and volume 1/6
var tetrahedron = [][3][3]float32{
	{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}},
	{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

const asciiTetrahedron = `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 1 0 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 0 1
    endloop
  endfacet
  facet normal -1 0 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0.577 0.577 0.577
    outer loop
      vertex 1 0 0
      vertex 0 1 0
      vertex 0 0 1
    endloop
  endfacet
endsolid tetra
`

func binaryTetrahedron(t *testing.T, name string) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, name)
	buf.Write(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(tetrahedron))))
	for _, vertices := range tetrahedron {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, binaryFacet{Vertices: vertices}))
	}
	return buf.Bytes()
}

func assertTetrahedron(t *testing.T, model *Model) {
	t.Helper()
	require.Equal(t, 4, model.FacetCount())
	assert.Equal(t, geometry.NewPoint3d(0, 0, 0), model.BoundingBox().Min)
	assert.Equal(t, geometry.NewPoint3d(1, 1, 1), model.BoundingBox().Max)
	assert.InDelta(t, 1.5+0.5*1.7320508075688772, model.SurfaceArea(), 1e-6)

	solid := polyhedron.New(model.Surfaces())
	assert.True(t, solid.IsEnclosedVolume())
	assert.False(t, solid.HasAnySurfaceWithIncorrectOrientation())
	assert.InDelta(t, 1.0/6, solid.PolyhedronVolume(), 1e-6)
}

func TestParseASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiTetrahedron))
	require.NoError(t, err)
	assert.Equal(t, "tetra", model.Name)
	assert.InDelta(t, -1.0, model.Facets[0].Normal.Z, 1e-12)
	assertTetrahedron(t, model)
}

func TestParseBinary(t *testing.T) {
	model, err := ParseReader(bytes.NewReader(binaryTetrahedron(t, "exported")))
	require.NoError(t, err)
	assert.Equal(t, "exported", model.Name)
	assertTetrahedron(t, model)
}

func TestParseBinaryWithSolidHeader(t *testing.T) {
	model, err := ParseReader(bytes.NewReader(binaryTetrahedron(t, "solid binary")))
	require.NoError(t, err)
	assertTetrahedron(t, model)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"bad coordinate", []byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 a 0\n")},
		{"short facet", []byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nendloop\nendfacet\n")},
		{"truncated binary", binaryTetrahedron(t, "cut")[:120]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(bytes.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
