package geometry

// GetDistancePointToLineSegment returns the distance from point to the segment start-end
func GetDistancePointToLineSegment(point, start, end Point3d) float64 {
	diff := point.Sub(start)
	dir := end.Sub(start)

	t := diff.Dot(dir)
	if t > 0 {
		sqrLen := dir.LengthSquared()
		if t >= sqrLen {
			diff = point.Sub(end)
		} else {
			diff = diff.Sub(dir.Mul(t / sqrLen))
		}
	}
	return diff.Length()
}

// GetDistancePointToTriangle returns the distance from point to the triangle t0, t1, t2.
//
// The closest point is found by classifying the projection of point into one
// of the seven regions of the triangle's parameter plane (Eberly, "Distance
// Between Point and Triangle in 3D").
func GetDistancePointToTriangle(point, t0, t1, t2 Point3d) float64 {
	closest := ClosestPointOnTriangle(point, t0, t1, t2)
	return point.Distance(closest)
}

// ClosestPointOnTriangle returns the point of the triangle t0, t1, t2 nearest to point
func ClosestPointOnTriangle(point, t0, t1, t2 Point3d) Point3d {
	diff := t0.Sub(point)
	edge0 := t1.Sub(t0)
	edge1 := t2.Sub(t0)
	a00 := edge0.Dot(edge0)
	a01 := edge0.Dot(edge1)
	a11 := edge1.Dot(edge1)
	b0 := diff.Dot(edge0)
	b1 := diff.Dot(edge1)
	det := a00*a11 - a01*a01
	if det < 0 {
		det = -det
	}
	s := a01*b1 - a11*b0
	t := a01*b0 - a00*b1

	if det == 0 {
		// degenerate triangle, fall back to the closest of the three edges
		best := t0
		bestDist := -1.0
		for _, seg := range [][2]Point3d{{t0, t1}, {t1, t2}, {t2, t0}} {
			c := closestPointOnSegment(point, seg[0], seg[1])
			if d := point.Distance(c); bestDist < 0 || d < bestDist {
				best, bestDist = c, d
			}
		}
		return best
	}

	if s+t <= det {
		if s < 0 {
			if t < 0 {
				// region 4
				if b0 < 0 {
					t = 0
					if -b0 >= a00 {
						s = 1
					} else {
						s = -b0 / a00
					}
				} else {
					s = 0
					if b1 >= 0 {
						t = 0
					} else if -b1 >= a11 {
						t = 1
					} else {
						t = -b1 / a11
					}
				}
			} else {
				// region 3
				s = 0
				if b1 >= 0 {
					t = 0
				} else if -b1 >= a11 {
					t = 1
				} else {
					t = -b1 / a11
				}
			}
		} else if t < 0 {
			// region 5
			t = 0
			if b0 >= 0 {
				s = 0
			} else if -b0 >= a00 {
				s = 1
			} else {
				s = -b0 / a00
			}
		} else {
			// region 0
			invDet := 1 / det
			s *= invDet
			t *= invDet
		}
	} else {
		if s < 0 {
			// region 2
			tmp0 := a01 + b0
			tmp1 := a11 + b1
			if tmp1 > tmp0 {
				numer := tmp1 - tmp0
				denom := a00 - 2*a01 + a11
				if numer >= denom {
					s = 1
					t = 0
				} else {
					s = numer / denom
					t = 1 - s
				}
			} else {
				s = 0
				if tmp1 <= 0 {
					t = 1
				} else if b1 >= 0 {
					t = 0
				} else {
					t = -b1 / a11
				}
			}
		} else if t < 0 {
			// region 6
			tmp0 := a01 + b1
			tmp1 := a00 + b0
			if tmp1 > tmp0 {
				numer := tmp1 - tmp0
				denom := a00 - 2*a01 + a11
				if numer >= denom {
					t = 1
					s = 0
				} else {
					t = numer / denom
					s = 1 - t
				}
			} else {
				t = 0
				if tmp1 <= 0 {
					s = 1
				} else if b0 >= 0 {
					s = 0
				} else {
					s = -b0 / a00
				}
			}
		} else {
			// region 1
			numer := a11 + b1 - a01 - b0
			if numer <= 0 {
				s = 0
				t = 1
			} else {
				denom := a00 - 2*a01 + a11
				if numer >= denom {
					s = 1
					t = 0
				} else {
					s = numer / denom
					t = 1 - s
				}
			}
		}
	}

	return t0.Add(edge0.Mul(s)).Add(edge1.Mul(t))
}

func closestPointOnSegment(point, start, end Point3d) Point3d {
	dir := end.Sub(start)
	sqrLen := dir.LengthSquared()
	if sqrLen == 0 {
		return start
	}
	t := point.Sub(start).Dot(dir) / sqrLen
	if t <= 0 {
		return start
	}
	if t >= 1 {
		return end
	}
	return start.Add(dir.Mul(t))
}
