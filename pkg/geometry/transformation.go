package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transformation is an affine 4x4 transformation of points and vectors
type Transformation struct {
	m mgl64.Mat4
}

// NewTransformation returns the identity transformation
func NewTransformation() Transformation {
	return Transformation{m: mgl64.Ident4()}
}

// Translation returns a transformation that moves points by v
func Translation(v Vector3d) Transformation {
	return Transformation{m: mgl64.Translate3D(v.X, v.Y, v.Z)}
}

// Rotation returns a rotation of radians about axis (right-hand rule).
// Returns false if the axis cannot be normalized.
func Rotation(axis Vector3d, radians float64) (Transformation, bool) {
	n, ok := axis.Normalize()
	if !ok {
		return NewTransformation(), false
	}
	return Transformation{m: mgl64.HomogRotate3D(radians, mgl64.Vec3{n.X, n.Y, n.Z})}, true
}

// RotationFromAxes returns the rotation mapping the world axes onto xPrime, yPrime and zPrime.
// The axes are expected to be orthonormal.
func RotationFromAxes(xPrime, yPrime, zPrime Vector3d) Transformation {
	return Transformation{m: mgl64.Mat4FromCols(
		mgl64.Vec4{xPrime.X, xPrime.Y, xPrime.Z, 0},
		mgl64.Vec4{yPrime.X, yPrime.Y, yPrime.Z, 0},
		mgl64.Vec4{zPrime.X, zPrime.Y, zPrime.Z, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)}
}

// AlignZPrime returns a rotation whose local z axis is zPrime.
// Local y points up the face for walls and north for horizontal faces.
func AlignZPrime(zPrime Vector3d) (Transformation, bool) {
	zp, ok := zPrime.Normalize()
	if !ok {
		return NewTransformation(), false
	}

	up := NewVector3d(0, 0, 1)
	if math.Abs(zp.Dot(up)) > 0.99 {
		up = NewVector3d(0, 1, 0)
	}

	yp, ok := up.Sub(zp.Mul(up.Dot(zp))).Normalize()
	if !ok {
		return NewTransformation(), false
	}
	xp := yp.Cross(zp)

	return RotationFromAxes(xp, yp, zp), true
}

// AlignFace returns the transformation from face coordinates to world coordinates.
// Applying its inverse maps the vertices onto the z=0 plane with the outward normal along +z.
func AlignFace(vertices []Point3d) (Transformation, bool) {
	normal, ok := GetOutwardNormal(vertices)
	if !ok {
		return NewTransformation(), false
	}
	rotation, ok := AlignZPrime(normal)
	if !ok {
		return NewTransformation(), false
	}

	rotated := rotation.Inverse().ApplyAll(vertices)
	minX, minY, sumZ := math.MaxFloat64, math.MaxFloat64, 0.0
	for _, p := range rotated {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		sumZ += p.Z
	}
	origin := NewVector3d(minX, minY, sumZ/float64(len(rotated)))

	return rotation.Mul(Translation(origin)), true
}

// Mul returns the composition t*other, which applies other first
func (t Transformation) Mul(other Transformation) Transformation {
	return Transformation{m: t.m.Mul4(other.m)}
}

// Inverse returns the inverse transformation
func (t Transformation) Inverse() Transformation {
	return Transformation{m: t.m.Inv()}
}

// Apply transforms a point
func (t Transformation) Apply(p Point3d) Point3d {
	r := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Point3d{X: r[0], Y: r[1], Z: r[2]}
}

// ApplyAll transforms every point of a list
func (t Transformation) ApplyAll(points []Point3d) []Point3d {
	result := make([]Point3d, len(points))
	for i, p := range points {
		result[i] = t.Apply(p)
	}
	return result
}

// ApplyVector transforms a vector, ignoring translation
func (t Transformation) ApplyVector(v Vector3d) Vector3d {
	r := t.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vector3d{X: r[0], Y: r[1], Z: r[2]}
}

// Matrix returns the underlying column-major matrix
func (t Transformation) Matrix() mgl64.Mat4 {
	return t.m
}
