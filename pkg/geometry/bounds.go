package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Point3d
	Max Point3d
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point3d{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Point3d{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// BoundingBoxOf returns the bounding box of a point set
func BoundingBoxOf(points []Point3d) BoundingBox {
	bbox := NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	return bbox
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Point3d) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether nothing has been added to the box
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3d {
	if b.IsEmpty() {
		return Vector3d{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Point3d {
	return Point3d{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// Intersects reports whether two boxes overlap, growing both by tol
func (b BoundingBox) Intersects(other BoundingBox, tol float64) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return b.Min.X-tol <= other.Max.X && other.Min.X-tol <= b.Max.X &&
		b.Min.Y-tol <= other.Max.Y && other.Min.Y-tol <= b.Max.Y &&
		b.Min.Z-tol <= other.Max.Z && other.Min.Z-tol <= b.Max.Z
}
