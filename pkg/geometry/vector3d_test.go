package geometry

import (
	"math"
	"testing"
)

func TestVector3dAdd(t *testing.T) {
	v1 := NewVector3d(1, 2, 3)
	v2 := NewVector3d(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3d(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3dLength(t *testing.T) {
	v := NewVector3d(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3dNormalize(t *testing.T) {
	normalized, ok := NewVector3d(3, 4, 0).Normalize()
	if !ok {
		t.Fatal("Normalize failed for non-zero vector")
	}
	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
	}

	if _, ok := NewVector3d(0, 0, 0).Normalize(); ok {
		t.Error("Normalize should fail for zero vector")
	}
}

func TestVector3dCross(t *testing.T) {
	v1 := NewVector3d(1, 0, 0)
	v2 := NewVector3d(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3d(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3dDot(t *testing.T) {
	v1 := NewVector3d(1, 2, 3)
	v2 := NewVector3d(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3dOrthogonal(t *testing.T) {
	v := NewVector3d(1, 0, 0)
	if got := v.OrthogonalLeft(); got != NewVector3d(0, 1, 0) {
		t.Errorf("OrthogonalLeft failed: got %v", got)
	}
	if got := v.OrthogonalRight(); got != NewVector3d(0, -1, 0) {
		t.Errorf("OrthogonalRight failed: got %v", got)
	}
}

func TestVector3dAngle(t *testing.T) {
	angle, ok := NewVector3d(1, 0, 0).Angle(NewVector3d(0, 2, 0))
	if !ok {
		t.Fatal("Angle failed")
	}
	if math.Abs(angle-math.Pi/2) > 1e-10 {
		t.Errorf("Angle failed: expected pi/2, got %v", angle)
	}
}

func TestPoint3dDistance(t *testing.T) {
	p1 := NewPoint3d(0, 0, 0)
	p2 := NewPoint3d(3, 4, 0)

	if d := p1.Distance(p2); math.Abs(d-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", d)
	}
	if !p1.IsAlmostEqual(NewPoint3d(0.001, 0, 0), 0.01) {
		t.Error("IsAlmostEqual should accept points within tolerance")
	}
	if p1 == NewPoint3d(1e-15, 0, 0) {
		t.Error("== must be exact")
	}
}
