package intersection

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// DefaultSpikeOffset is the shrink and expand distance used by RemoveSpikes
const DefaultSpikeOffset = 0.01

// spikeSimplifyTol merges the vertices the offset round trip leaves behind
const spikeSimplifyTol = 0.001

// RemoveSpikes removes zero-width spikes from a clockwise face-coordinate loop
// by shrinking and expanding it by DefaultSpikeOffset.
func RemoveSpikes(polygon []geometry.Point3d, tol float64) []geometry.Point3d {
	return RemoveSpikesEx(polygon, tol, DefaultSpikeOffset)
}

// RemoveSpikesEx is RemoveSpikes with a caller supplied offset. Vertices of
// the result are snapped back onto input vertices within tol. If the vertex
// count is unchanged the input is returned as is, which also hides a spike
// removal that happens to keep the count. Returns nil if nothing survives.
func RemoveSpikesEx(polygon []geometry.Point3d, tol, offset float64) []geometry.Point3d {
	m := newPointMerger(tol)
	r, ok := m.faceRing(polygon)
	if !ok {
		return nil
	}

	opened, ok := openRing(r, offset)
	if !ok || len(opened) == 0 {
		logger().Warn("removeSpikes: nothing left after shrinking", "offset", offset)
		return nil
	}

	largest := 0
	for i := range opened {
		if polygonArea(opened[i]) > polygonArea(opened[largest]) {
			largest = i
		}
	}
	if len(opened) > 1 {
		logger().Warn("removeSpikes: polygon split apart, keeping largest piece", "pieces", len(opened))
	}

	simplified := Simplify(toPoints(opened[largest][0]), true, spikeSimplifyTol)
	if simplified == nil {
		return nil
	}

	snapped := make([]geometry.Point3d, 0, len(simplified))
	for _, p := range simplified {
		for _, q := range polygon {
			if p.IsAlmostEqual(q, tol) {
				p = q
				break
			}
		}
		if len(snapped) > 0 && snapped[len(snapped)-1] == p {
			continue
		}
		snapped = append(snapped, p)
	}
	for len(snapped) > 1 && snapped[0] == snapped[len(snapped)-1] {
		snapped = snapped[:len(snapped)-1]
	}
	if len(snapped) < 3 {
		return nil
	}
	if area, ok := geometry.GetArea(snapped); !ok || area <= tol*tol {
		return nil
	}

	if len(snapped) == len(polygon) {
		result := make([]geometry.Point3d, len(polygon))
		copy(result, polygon)
		return result
	}
	return geometry.ReorderULC(snapped)
}

// openRing is a morphological opening: shrink by offset, then grow back
func openRing(r orb.Ring, offset float64) (orb.MultiPolygon, bool) {
	shrunk, ok := bufferRing(r, -math.Abs(offset), spikeMiterLimit)
	if !ok {
		return nil, false
	}

	var grown orb.MultiPolygon
	for _, p := range shrunk {
		g, ok := bufferRing(p[0], math.Abs(offset), spikeMiterLimit)
		if !ok {
			return nil, false
		}
		grown = append(grown, g...)
	}
	return unionAll(grown)
}
