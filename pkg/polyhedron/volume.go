package polyhedron

import (
	"github.com/philipparndt/gogeom/pkg/geometry"
)

// PolyhedronVolume is the Newell pyramid volume, sign corrected for a solid
// that is completely inside out. The value is still computed for an invalid
// solid but a warning is logged.
func (p *Polyhedron) PolyhedronVolume() float64 {
	p.warnIfInvalid()
	volume := p.calcPolyhedronVolume()
	if p.completelyInsideOut {
		return -volume
	}
	return volume
}

// CalcDivergenceTheoremVolume computes the volume from each face's plane
// offset and area, sign corrected like PolyhedronVolume
func (p *Polyhedron) CalcDivergenceTheoremVolume() float64 {
	p.warnIfInvalid()
	volume := 0.0
	for _, s := range p.surfaces {
		plane, err := geometry.NewPlaneFromPoints(s.Vertices)
		if err != nil {
			logger().Warn("skipping surface without a plane", "surface", s.Name, "error", err)
			continue
		}
		area, ok := geometry.GetArea(s.Vertices)
		if !ok {
			continue
		}
		volume -= plane.D() * area / 3
	}
	if p.completelyInsideOut {
		return -volume
	}
	return volume
}

func (p *Polyhedron) warnIfInvalid() {
	if !p.enclosed {
		logger().Warn("polyhedron is not enclosed, volume may be invalid")
	} else if p.hasConflicts {
		logger().Warn("polyhedron has surfaces with incorrect orientation, volume may be invalid")
	}
}

// calcPolyhedronVolume sums the signed pyramids from the origin to every face
func (p *Polyhedron) calcPolyhedronVolume() float64 {
	volume := 0.0
	for _, s := range p.surfaces {
		newell, ok := geometry.GetNewellVector(s.Vertices)
		if !ok {
			continue
		}
		volume += newell.Dot(s.Vertices[1].Vector())
	}
	return volume / 6
}

// SurfaceArea is the summed area of all faces
func (p *Polyhedron) SurfaceArea() float64 {
	total := 0.0
	for _, s := range p.surfaces {
		if area, ok := geometry.GetArea(s.Vertices); ok {
			total += area
		}
	}
	return total
}
