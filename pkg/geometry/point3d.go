package geometry

import (
	"fmt"
	"math"
)

// Point3d represents a location in 3D space.
// Equality with == is exact; tolerance is applied by the algorithms.
type Point3d struct {
	X, Y, Z float64
}

// NewPoint3d creates a new 3D point
func NewPoint3d(x, y, z float64) Point3d {
	return Point3d{X: x, Y: y, Z: z}
}

// Sub returns the vector from other to p
func (p Point3d) Sub(other Point3d) Vector3d {
	return Vector3d{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

// Add returns the point displaced by v
func (p Point3d) Add(v Vector3d) Point3d {
	return Point3d{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Vector returns the displacement of p from the origin
func (p Point3d) Vector() Vector3d {
	return Vector3d{X: p.X, Y: p.Y, Z: p.Z}
}

// Distance returns the distance between two points
func (p Point3d) Distance(other Point3d) float64 {
	return p.Sub(other).Length()
}

// IsAlmostEqual reports whether the points are within tol of each other
func (p Point3d) IsAlmostEqual(other Point3d, tol float64) bool {
	return p.Distance(other) <= tol
}

// Min returns a point with the minimum components of two points
func (p Point3d) Min(other Point3d) Point3d {
	return Point3d{
		X: math.Min(p.X, other.X),
		Y: math.Min(p.Y, other.Y),
		Z: math.Min(p.Z, other.Z),
	}
}

// Max returns a point with the maximum components of two points
func (p Point3d) Max(other Point3d) Point3d {
	return Point3d{
		X: math.Max(p.X, other.X),
		Y: math.Max(p.Y, other.Y),
		Z: math.Max(p.Z, other.Z),
	}
}

// String formats the point with six decimals
func (p Point3d) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", p.X, p.Y, p.Z)
}

// GetDistance returns the distance between two points
func GetDistance(p1, p2 Point3d) float64 {
	return p1.Distance(p2)
}
