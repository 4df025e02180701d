package triangulate

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

type vertexKind int

const (
	regularVertex vertexKind = iota
	startVertex
	endVertex
	splitVertex
	mergeVertex
)

type sweepVertex struct {
	p          orb.Point
	prev, next int
}

// above orders the sweep from top to bottom, left to right on ties
func above(a, b orb.Point) bool {
	return a[1] > b[1] || (a[1] == b[1] && a[0] < b[0])
}

func monotone(outer []orb.Point, holes [][]orb.Point, eps float64) ([]Triangle, error) {
	var vs []sweepVertex
	for _, ring := range append([][]orb.Point{outer}, holes...) {
		base := len(vs)
		n := len(ring)
		for i, p := range ring {
			vs = append(vs, sweepVertex{p: p, prev: base + (i+n-1)%n, next: base + (i+1)%n})
		}
	}

	diagonals, err := monotoneDiagonals(vs)
	if err != nil {
		return nil, err
	}

	var triangles []Triangle
	for _, face := range splitFaces(vs, diagonals) {
		points := make([]orb.Point, len(face))
		for i, id := range face {
			points[i] = vs[id].p
		}
		triangles = append(triangles, triangulateMonotone(points, eps)...)
	}
	return triangles, nil
}

func classify(vs []sweepVertex, i int) vertexKind {
	p, a, b := vs[i].p, vs[vs[i].prev].p, vs[vs[i].next].p
	prevBelow, nextBelow := above(p, a), above(p, b)
	convex := cross(a, p, b) > 0
	switch {
	case prevBelow && nextBelow && convex:
		return startVertex
	case prevBelow && nextBelow:
		return splitVertex
	case !prevBelow && !nextBelow && convex:
		return endVertex
	case !prevBelow && !nextBelow:
		return mergeVertex
	}
	return regularVertex
}

// monotoneDiagonals sweeps top to bottom and returns the diagonals that
// remove every split and merge vertex. Edges are identified by their upper vertex.
func monotoneDiagonals(vs []sweepVertex) ([][2]int, error) {
	order := make([]int, len(vs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return above(vs[order[i]].p, vs[order[j]].p) })

	kinds := make([]vertexKind, len(vs))
	for i := range vs {
		kinds[i] = classify(vs, i)
	}

	helper := map[int]int{}
	var status []int
	var diagonals [][2]int

	remove := func(edge int) bool {
		for k, e := range status {
			if e == edge {
				status = append(status[:k], status[k+1:]...)
				delete(helper, edge)
				return true
			}
		}
		return false
	}
	leftOf := func(v int) (int, bool) {
		p := vs[v].p
		best, bestX := -1, math.Inf(-1)
		for _, e := range status {
			x := edgeXAt(vs[e].p, vs[vs[e].next].p, p[1])
			if x <= p[0] && x > bestX {
				best, bestX = e, x
			}
		}
		return best, best >= 0
	}
	closeMerge := func(v, edge int) {
		if h, ok := helper[edge]; ok && kinds[h] == mergeVertex {
			diagonals = append(diagonals, [2]int{v, h})
		}
	}

	for _, v := range order {
		prevEdge := vs[v].prev
		switch kinds[v] {
		case startVertex:
			status = append(status, v)
			helper[v] = v

		case endVertex:
			closeMerge(v, prevEdge)
			if !remove(prevEdge) {
				return nil, ErrMonotone
			}

		case splitVertex:
			left, ok := leftOf(v)
			if !ok {
				return nil, ErrMonotone
			}
			diagonals = append(diagonals, [2]int{v, helper[left]})
			helper[left] = v
			status = append(status, v)
			helper[v] = v

		case mergeVertex:
			closeMerge(v, prevEdge)
			if !remove(prevEdge) {
				return nil, ErrMonotone
			}
			left, ok := leftOf(v)
			if !ok {
				return nil, ErrMonotone
			}
			closeMerge(v, left)
			helper[left] = v

		default:
			if above(vs[prevEdge].p, vs[v].p) {
				// descending boundary, interior to the right
				closeMerge(v, prevEdge)
				if !remove(prevEdge) {
					return nil, ErrMonotone
				}
				status = append(status, v)
				helper[v] = v
			} else {
				left, ok := leftOf(v)
				if !ok {
					return nil, ErrMonotone
				}
				closeMerge(v, left)
				helper[left] = v
			}
		}
	}
	return diagonals, nil
}

func edgeXAt(a, b orb.Point, y float64) float64 {
	if a[1] == b[1] {
		return math.Max(a[0], b[0])
	}
	return a[0] + (y-a[1])*(b[0]-a[0])/(b[1]-a[1])
}

// splitFaces walks the boundary plus diagonals and returns each interior face
// as counter-clockwise vertex ids.
func splitFaces(vs []sweepVertex, diagonals [][2]int) [][]int {
	type halfEdge struct{ from, to int }
	outgoing := make([][]int, len(vs))
	for i := range vs {
		outgoing[i] = append(outgoing[i], vs[i].next)
	}
	for _, d := range diagonals {
		outgoing[d[0]] = append(outgoing[d[0]], d[1])
		outgoing[d[1]] = append(outgoing[d[1]], d[0])
	}

	used := map[halfEdge]bool{}
	angle := func(from, to int) float64 {
		return math.Atan2(vs[to].p[1]-vs[from].p[1], vs[to].p[0]-vs[from].p[0])
	}

	var faces [][]int
	for start := range vs {
		for _, first := range outgoing[start] {
			if used[halfEdge{start, first}] {
				continue
			}
			var face []int
			u, v := start, first
			for steps := 0; !used[halfEdge{u, v}] && steps <= 2*len(vs)+2*len(diagonals); steps++ {
				used[halfEdge{u, v}] = true
				face = append(face, u)

				back := angle(v, u)
				best, bestTurn := -1, math.Inf(1)
				for _, w := range outgoing[v] {
					if w == u && len(outgoing[v]) > 1 {
						continue
					}
					turn := back - angle(v, w)
					for turn <= 0 {
						turn += 2 * math.Pi
					}
					if turn < bestTurn {
						best, bestTurn = w, turn
					}
				}
				u, v = v, best
			}
			if len(face) >= 3 {
				faces = append(faces, face)
			}
		}
	}
	return faces
}

// triangulateMonotone triangulates a counter-clockwise y-monotone polygon
func triangulateMonotone(points []orb.Point, eps float64) []Triangle {
	n := len(points)
	if n < 3 {
		return nil
	}

	top, bottom := 0, 0
	for i, p := range points {
		if above(p, points[top]) {
			top = i
		}
		if above(points[bottom], p) {
			bottom = i
		}
	}
	left := make([]bool, n)
	for i := (top + 1) % n; i != bottom; i = (i + 1) % n {
		left[i] = true
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return above(points[order[i]], points[order[j]]) })

	var triangles []Triangle
	emit := func(a, b, c int) {
		if t, ok := newTriangle(points[a], points[b], points[c], eps); ok {
			triangles = append(triangles, t)
		}
	}

	stack := []int{order[0], order[1]}
	for j := 2; j < n-1; j++ {
		u := order[j]
		topOfStack := stack[len(stack)-1]
		if left[u] != left[topOfStack] {
			for k := 0; k < len(stack)-1; k++ {
				emit(u, stack[k], stack[k+1])
			}
			stack = []int{order[j-1], u}
			continue
		}

		last := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			var inside bool
			if left[u] {
				inside = cross(points[s], points[last], points[u]) > eps
			} else {
				inside = cross(points[u], points[last], points[s]) > eps
			}
			if !inside {
				break
			}
			emit(u, last, s)
			last = s
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, last, u)
	}

	u := order[n-1]
	for k := 0; k < len(stack)-1; k++ {
		emit(u, stack[k], stack[k+1])
	}
	return triangles
}
