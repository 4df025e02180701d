package geometry

import (
	"fmt"
	"math"
)

// normalizeEpsilon is the length below which a vector cannot be normalized
const normalizeEpsilon = 1e-12

// Vector3d represents a displacement in 3D space
type Vector3d struct {
	X, Y, Z float64
}

// NewVector3d creates a new 3D vector
func NewVector3d(x, y, z float64) Vector3d {
	return Vector3d{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3d) Add(other Vector3d) Vector3d {
	return Vector3d{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3d) Sub(other Vector3d) Vector3d {
	return Vector3d{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector3d) Mul(scalar float64) Vector3d {
	return Vector3d{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Reverse returns the vector pointing the opposite way
func (v Vector3d) Reverse() Vector3d {
	return Vector3d{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vector3d) Dot(other Vector3d) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3d) Cross(other Vector3d) Vector3d {
	return Vector3d{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3d) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector3d) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector in the same direction.
// The second return value is false when the vector has (almost) zero length.
func (v Vector3d) Normalize() (Vector3d, bool) {
	length := v.Length()
	if length < normalizeEpsilon {
		return Vector3d{}, false
	}
	return v.Mul(1.0 / length), true
}

// SetLength returns a vector in the same direction with the given length
func (v Vector3d) SetLength(length float64) (Vector3d, bool) {
	n, ok := v.Normalize()
	if !ok {
		return Vector3d{}, false
	}
	return n.Mul(length), true
}

// OrthogonalRight returns the vector rotated 90 degrees clockwise about +z
func (v Vector3d) OrthogonalRight() Vector3d {
	return Vector3d{X: v.Y, Y: -v.X, Z: v.Z}
}

// OrthogonalLeft returns the vector rotated 90 degrees counter-clockwise about +z
func (v Vector3d) OrthogonalLeft() Vector3d {
	return Vector3d{X: -v.Y, Y: v.X, Z: v.Z}
}

// Angle returns the angle in radians between two vectors, or false if either is zero length
func (v Vector3d) Angle(other Vector3d) (float64, bool) {
	a, ok := v.Normalize()
	if !ok {
		return 0, false
	}
	b, ok := other.Normalize()
	if !ok {
		return 0, false
	}
	d := math.Max(-1, math.Min(1, a.Dot(b)))
	return math.Acos(d), true
}

// String formats the vector with six decimals
func (v Vector3d) String() string {
	return fmt.Sprintf("[%.6f, %.6f, %.6f]", v.X, v.Y, v.Z)
}
