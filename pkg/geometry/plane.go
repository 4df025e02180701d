package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewPoints is returned when a plane is built from fewer than 3 points
	ErrTooFewPoints = errors.New("plane: at least 3 points are required")
	// ErrZeroNormal is returned when the normal vector cannot be normalized
	ErrZeroNormal = errors.New("plane: normal vector has zero length")
	// ErrDegeneratePoints is returned when no least squares formulation is solvable
	ErrDegeneratePoints = errors.New("plane: points do not define a plane")
)

// minPlaneDeterminant is the smallest determinant of the normal equations that is accepted
const minPlaneDeterminant = 1e-8

// Plane is a plane in Hessian normal form, a*x + b*y + c*z + d = 0 with a unit normal (a, b, c)
type Plane struct {
	a, b, c, d float64
}

// NewPlane creates a plane through point with the given normal
func NewPlane(point Point3d, normal Vector3d) (Plane, error) {
	n, ok := normal.Normalize()
	if !ok {
		return Plane{}, ErrZeroNormal
	}
	return Plane{a: n.X, b: n.Y, c: n.Z, d: -(n.X*point.X + n.Y*point.Y + n.Z*point.Z)}, nil
}

// MustPlane is like NewPlaneFromPoints but panics on failure.
// Use it only for vertex data that has already been validated.
func MustPlane(points []Point3d) Plane {
	p, err := NewPlaneFromPoints(points)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPlaneFromPoints fits a plane to three or more (possibly noisy) coplanar points.
//
// Three points define the plane directly. For more points the overdetermined
// system is solved by least squares three times, fixing a, b or c to one in
// turn, and the best conditioned formulation wins. The normal is then oriented
// to agree with the outward normal of the vertex winding.
func NewPlaneFromPoints(points []Point3d) (Plane, error) {
	n := len(points)
	if n < 3 {
		return Plane{}, ErrTooFewPoints
	}

	if n == 3 {
		normal := points[1].Sub(points[0]).Cross(points[2].Sub(points[0]))
		p, err := NewPlane(points[0], normal)
		if err != nil {
			return Plane{}, fmt.Errorf("%w: %v", ErrDegeneratePoints, err)
		}
		return p, nil
	}

	type solution struct {
		a, b, c, d float64
		det        float64
	}
	var best *solution

	// fixed selects which coefficient is set to one: 0 for a, 1 for b, 2 for c
	for fixed := 0; fixed < 3; fixed++ {
		A := mat.NewDense(n, 3, nil)
		rhs := mat.NewVecDense(n, nil)
		for i, p := range points {
			coords := [3]float64{p.X, p.Y, p.Z}
			col := 0
			for k := 0; k < 3; k++ {
				if k == fixed {
					continue
				}
				A.Set(i, col, coords[k])
				col++
			}
			A.Set(i, 2, 1)
			rhs.SetVec(i, -coords[fixed])
		}

		var ata mat.Dense
		ata.Mul(A.T(), A)
		det := math.Abs(mat.Det(&ata))
		if det <= minPlaneDeterminant {
			continue
		}
		if best != nil && det <= best.det {
			continue
		}

		var atb mat.VecDense
		atb.MulVec(A.T(), rhs)
		var x mat.VecDense
		if err := x.SolveVec(&ata, &atb); err != nil {
			continue
		}

		s := &solution{d: x.AtVec(2), det: det}
		u, v := x.AtVec(0), x.AtVec(1)
		switch fixed {
		case 0:
			s.a, s.b, s.c = 1, u, v
		case 1:
			s.a, s.b, s.c = u, 1, v
		case 2:
			s.a, s.b, s.c = u, v, 1
		}
		best = s
	}

	if best == nil {
		return Plane{}, ErrDegeneratePoints
	}

	length := math.Sqrt(best.a*best.a + best.b*best.b + best.c*best.c)
	p := Plane{a: best.a / length, b: best.b / length, c: best.c / length, d: best.d / length}

	if outward, ok := GetOutwardNormal(points); ok && outward.Dot(p.OutwardNormal()) < 0 {
		p = p.Reversed()
	}
	return p, nil
}

// A returns the x coefficient of the unit normal
func (p Plane) A() float64 { return p.a }

// B returns the y coefficient of the unit normal
func (p Plane) B() float64 { return p.b }

// C returns the z coefficient of the unit normal
func (p Plane) C() float64 { return p.c }

// D returns the plane offset
func (p Plane) D() float64 { return p.d }

// OutwardNormal returns the unit normal of the plane
func (p Plane) OutwardNormal() Vector3d {
	return NewVector3d(p.a, p.b, p.c)
}

// Reversed returns the same plane with the normal flipped
func (p Plane) Reversed() Plane {
	return Plane{a: -p.a, b: -p.b, c: -p.c, d: -p.d}
}

// Distance returns the signed distance from point to the plane
func (p Plane) Distance(point Point3d) float64 {
	return p.a*point.X + p.b*point.Y + p.c*point.Z + p.d
}

// PointOnPlane reports whether point lies within tol of the plane
func (p Plane) PointOnPlane(point Point3d, tol float64) bool {
	return math.Abs(p.Distance(point)) <= tol
}

// Project returns the orthogonal projection of point onto the plane
func (p Plane) Project(point Point3d) Point3d {
	return point.Add(p.OutwardNormal().Mul(-p.Distance(point)))
}

// ProjectAll projects every point onto the plane
func (p Plane) ProjectAll(points []Point3d) []Point3d {
	result := make([]Point3d, len(points))
	for i, pt := range points {
		result[i] = p.Project(pt)
	}
	return result
}

// Parallel reports whether the planes have parallel or anti-parallel normals
func (p Plane) Parallel(other Plane, tol float64) bool {
	return math.Abs(p.OutwardNormal().Dot(other.OutwardNormal())) >= 1-tol
}

// Equal reports whether the planes coincide with the same orientation
func (p Plane) Equal(other Plane, tol float64) bool {
	dot := p.OutwardNormal().Dot(other.OutwardNormal())
	return dot >= 1-tol && math.Abs(p.d-other.d) <= tol
}

// ReverseEqual reports whether the planes coincide with opposite orientation
func (p Plane) ReverseEqual(other Plane, tol float64) bool {
	dot := p.OutwardNormal().Dot(other.OutwardNormal())
	return dot <= -1+tol && math.Abs(p.d+other.d) <= tol
}

// RayIntersection returns where the ray from origin along direction hits the plane.
// With enforceDirectionOfPlane the ray must travel against the outward normal.
func (p Plane) RayIntersection(origin Point3d, direction Vector3d, enforceDirectionOfPlane bool) (Point3d, bool) {
	normal := p.OutwardNormal()
	denom := normal.Dot(direction)
	if math.Abs(denom) < 0.001 {
		return Point3d{}, false
	}
	if enforceDirectionOfPlane && denom >= 0 {
		return Point3d{}, false
	}

	t := -p.Distance(origin) / denom
	if t <= 0 {
		return Point3d{}, false
	}
	return origin.Add(direction.Mul(t)), true
}

// String formats the plane equation
func (p Plane) String() string {
	return fmt.Sprintf("[%.6f, %.6f, %.6f, %.6f]", p.a, p.b, p.c, p.d)
}
