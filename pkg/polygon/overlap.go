package polygon

import (
	"math"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// minOverlapLength drops overlaps that only touch
const minOverlapLength = 0.01

// Segment is a straight line between two points
type Segment struct {
	Start, End geometry.Point3d
}

// Length of the segment
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// lineFrame returns the transformation from the frame where the segment
// starts at the origin and runs along +x to world coordinates
func lineFrame(s Segment) (geometry.Transformation, bool) {
	xp, ok := s.End.Sub(s.Start).Normalize()
	if !ok {
		return geometry.NewTransformation(), false
	}
	up := geometry.NewVector3d(0, 0, 1)
	if math.Abs(xp.Dot(up)) > 0.99 {
		up = geometry.NewVector3d(0, 1, 0)
	}
	zp, ok := up.Sub(xp.Mul(up.Dot(xp))).Normalize()
	if !ok {
		return geometry.NewTransformation(), false
	}
	yp := zp.Cross(xp)
	rotation := geometry.RotationFromAxes(xp, yp, zp)
	return geometry.Translation(s.Start.Vector()).Mul(rotation), true
}

// Overlap returns the parts of line shared with an edge of the polygon, outer
// loop or hole. Overlaps shorter than 0.01 are skipped. Edges count as
// collinear with the line if both ends are within tol of it.
func (p *Polygon3d) Overlap(line Segment, tol float64) []Segment {
	frame, ok := lineFrame(line)
	if !ok {
		return nil
	}
	toLine := frame.Inverse()
	length := line.Length()

	var result []Segment
	loops := append([][]geometry.Point3d{p.outer}, p.holes...)
	for _, loop := range loops {
		n := len(loop)
		for i := range loop {
			a, b := toLine.Apply(loop[i]), toLine.Apply(loop[(i+1)%n])
			if !onAxis(a, tol) || !onAxis(b, tol) {
				continue
			}
			lo := math.Max(0, math.Min(a.X, b.X))
			hi := math.Min(length, math.Max(a.X, b.X))
			if hi-lo < minOverlapLength {
				continue
			}
			result = append(result, Segment{
				Start: frame.Apply(geometry.NewPoint3d(lo, 0, 0)),
				End:   frame.Apply(geometry.NewPoint3d(hi, 0, 0)),
			})
		}
	}
	return result
}

func onAxis(p geometry.Point3d, tol float64) bool {
	return math.Abs(p.Y) <= tol && math.Abs(p.Z) <= tol
}
