package geometry

import (
	"log/slog"
	"math"
)

func logger() *slog.Logger {
	return slog.Default().With("component", "geometry")
}

// GetNewellVector returns the Newell vector of a polygon.
// Its direction is the outward normal and its length is twice the polygon area.
func GetNewellVector(points []Point3d) (Vector3d, bool) {
	n := len(points)
	if n < 3 {
		return Vector3d{}, false
	}

	var result Vector3d
	p0 := points[0]
	for i := 1; i < n-1; i++ {
		v1 := points[i].Sub(p0)
		v2 := points[i+1].Sub(p0)
		result = result.Add(v1.Cross(v2))
	}
	return result, true
}

// GetOutwardNormal returns the unit outward normal of a polygon
func GetOutwardNormal(points []Point3d) (Vector3d, bool) {
	newell, ok := GetNewellVector(points)
	if !ok {
		return Vector3d{}, false
	}
	return newell.Normalize()
}

// GetArea returns the area of a planar polygon
func GetArea(points []Point3d) (float64, bool) {
	newell, ok := GetNewellVector(points)
	if !ok {
		return 0, false
	}
	if _, ok := newell.Normalize(); !ok {
		return 0, false
	}
	return newell.Length() / 2.0, true
}

// GetPerimeter returns the length of the closed loop
func GetPerimeter(points []Point3d) float64 {
	perimeter := 0.0
	for i := range points {
		perimeter += points[i].Distance(points[(i+1)%len(points)])
	}
	return perimeter
}

// GetCentroid returns the area centroid of a planar polygon.
// Returns false for degenerate polygons.
func GetCentroid(points []Point3d) (Point3d, bool) {
	if len(points) < 3 {
		return Point3d{}, false
	}
	t, ok := AlignFace(points)
	if !ok {
		return Point3d{}, false
	}
	face := t.Inverse().ApplyAll(points)

	n := len(face)
	area := 0.0
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		a := face[i]
		b := face[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	area /= 2.0
	if area <= 0 {
		return Point3d{}, false
	}
	cx /= 6.0 * area
	cy /= 6.0 * area

	return t.Apply(NewPoint3d(cx, cy, 0)), true
}

// Reverse returns the vertices in reverse order
func Reverse(points []Point3d) []Point3d {
	result := make([]Point3d, len(points))
	for i, p := range points {
		result[len(points)-1-i] = p
	}
	return result
}

// ReorderULC rotates the vertex list so the upper left corner in face
// coordinates comes first. The winding is not changed.
func ReorderULC(points []Point3d) []Point3d {
	n := len(points)
	if n < 3 {
		return nil
	}
	t, ok := AlignFace(points)
	if !ok {
		return nil
	}
	face := t.Inverse().ApplyAll(points)

	maxY := -math.MaxFloat64
	minX := math.MaxFloat64
	ulc := 0
	for i, p := range face {
		if math.Abs(p.Z) > 0.001 {
			logger().Warn("reorderULC: vertex is not on the face plane", "index", i, "z", p.Z)
		}
		if maxY < p.Y || (maxY < p.Y+0.00001 && minX > p.X) {
			ulc = i
			maxY = p.Y
			minX = p.X
		}
	}

	result := make([]Point3d, 0, n)
	result = append(result, points[ulc:]...)
	result = append(result, points[:ulc]...)
	return result
}

// RemoveCollinearLegacy removes vertices whose incoming and outgoing edges
// are parallel or reverse each other, as well as coincident vertices.
func RemoveCollinearLegacy(points []Point3d, tol float64) []Point3d {
	result := append([]Point3d(nil), points...)
	for {
		n := len(result)
		if n < 3 {
			return result
		}
		removed := -1
		for i := 0; i < n; i++ {
			prev := result[(i+n-1)%n]
			cur := result[i]
			next := result[(i+1)%n]
			a, okA := cur.Sub(prev).Normalize()
			b, okB := next.Sub(cur).Normalize()
			if !okA || !okB {
				removed = i
				break
			}
			if a.Cross(b).Length() < tol || a.Dot(b) <= -1+tol {
				removed = i
				break
			}
		}
		if removed < 0 {
			return result
		}
		result = append(result[:removed], result[removed+1:]...)
	}
}

// CircularEqual reports whether points2 is points1 rotated by some offset,
// with every vertex pair within tol. Reflections are not equal.
func CircularEqual(points1, points2 []Point3d, tol float64) bool {
	n := len(points1)
	if n != len(points2) {
		return false
	}
	if n == 0 {
		return true
	}

	for i := 0; i < n; i++ {
		if points1[0].Distance(points2[i]) > tol {
			continue
		}
		match := true
		for j := 0; j < n; j++ {
			if points1[j].Distance(points2[(i+j)%n]) > tol {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// IsConvex reports whether the planar polygon turns the same way at every vertex.
// Collinear vertices are allowed.
func IsConvex(points []Point3d) bool {
	normal, ok := GetOutwardNormal(points)
	if !ok {
		return false
	}
	n := len(points)
	for i := 0; i < n; i++ {
		a := points[(i+1)%n].Sub(points[i])
		b := points[(i+2)%n].Sub(points[(i+1)%n])
		if a.Cross(b).Dot(normal) < -1e-12*a.Length()*b.Length() {
			return false
		}
	}
	return true
}
