package intersection

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// Join unions two clockwise face-coordinate loops. It succeeds only if the
// union is a single polygon without holes; the result starts at the
// upper-left corner and has no collinear vertices.
func Join(polygon1, polygon2 []geometry.Point3d, tol float64) ([]geometry.Point3d, bool) {
	m := newPointMerger(tol)
	r1, ok := m.faceRing(polygon1)
	if !ok {
		return nil, false
	}
	r2, ok := m.faceRing(polygon2)
	if !ok {
		return nil, false
	}
	if selfIntersects(r1) || selfIntersects(r2) {
		logger().Debug("join: input polygon self intersects")
		return nil, false
	}

	union, ok := boolean(opUnion, orb.MultiPolygon{{r1}}, orb.MultiPolygon{{r2}})
	if !ok || len(union) != 1 || len(union[0]) != 1 {
		return nil, false
	}
	if polygonArea(union[0]) <= tol*tol {
		return nil, false
	}

	joined := Simplify(m.combineAll(toPoints(union[0][0])), true, tol)
	if joined == nil {
		return nil, false
	}
	return joined, true
}

// joinCandidate indexes a polygon by its face-coordinate bounds
type joinCandidate struct {
	index int
	rect  rtreego.Rect
}

func (c *joinCandidate) Bounds() rtreego.Rect {
	return c.rect
}

func newJoinCandidate(index int, polygon []geometry.Point3d, tol float64) (*joinCandidate, bool) {
	box := geometry.BoundingBoxOf(polygon)
	if box.IsEmpty() {
		return nil, false
	}
	pad := math.Max(tol, 1e-9)
	rect, err := rtreego.NewRect(
		rtreego.Point{box.Min.X - pad, box.Min.Y - pad},
		[]float64{box.Max.X - box.Min.X + 2*pad, box.Max.Y - box.Min.Y + 2*pad},
	)
	if err != nil {
		return nil, false
	}
	return &joinCandidate{index: index, rect: rect}, true
}

// JoinAll finds groups of polygons that can be joined pairwise and joins each
// group into as few polygons as possible. Within a group the largest polygon
// goes first; ties keep input order. Members that cannot be joined after
// trying once per member are returned unchanged and logged.
func JoinAll(polygons [][]geometry.Point3d, tol float64) [][]geometry.Point3d {
	n := len(polygons)
	adjacent := make([][]int, n)

	tree := rtreego.NewTree(2, 4, 16)
	candidates := make([]*joinCandidate, n)
	for i, polygon := range polygons {
		if c, ok := newJoinCandidate(i, polygon, tol); ok {
			candidates[i] = c
			tree.Insert(c)
		}
	}
	for i, c := range candidates {
		if c == nil {
			continue
		}
		hits := tree.SearchIntersect(c.rect)
		sort.Slice(hits, func(a, b int) bool { return hits[a].(*joinCandidate).index < hits[b].(*joinCandidate).index })
		for _, hit := range hits {
			j := hit.(*joinCandidate).index
			if j <= i {
				continue
			}
			if _, ok := Join(polygons[i], polygons[j], tol); ok {
				adjacent[i] = append(adjacent[i], j)
				adjacent[j] = append(adjacent[j], i)
			}
		}
	}

	areas := make([]float64, n)
	for i, polygon := range polygons {
		areas[i], _ = geometry.GetArea(polygon)
	}

	var result [][]geometry.Point3d
	for _, component := range connectedComponents(adjacent) {
		sort.SliceStable(component, func(a, b int) bool { return areas[component[a]] > areas[component[b]] })
		result = append(result, joinComponent(polygons, component, tol)...)
	}
	return result
}

func joinComponent(polygons [][]geometry.Point3d, component []int, tol float64) [][]geometry.Point3d {
	current := polygons[component[0]]
	remaining := append([]int(nil), component[1:]...)

	for pass := 0; pass < len(component) && len(remaining) > 0; pass++ {
		var left []int
		for _, i := range remaining {
			if joined, ok := Join(current, polygons[i], tol); ok {
				current = joined
			} else {
				left = append(left, i)
			}
		}
		if len(left) == len(remaining) {
			break
		}
		remaining = left
	}

	result := [][]geometry.Point3d{current}
	if len(remaining) > 0 {
		logger().Warn("joinAll: could not join all polygons of a group", "group", len(component), "unjoined", len(remaining))
		for _, i := range remaining {
			result = append(result, polygons[i])
		}
	}
	return result
}

// connectedComponents groups vertices reachable from each other, in order of their lowest index
func connectedComponents(adjacent [][]int) [][]int {
	visited := make([]bool, len(adjacent))
	var components [][]int
	for start := range adjacent {
		if visited[start] {
			continue
		}
		visited[start] = true
		component := []int{start}
		for queue := []int{start}; len(queue) > 0; queue = queue[1:] {
			for _, next := range adjacent[queue[0]] {
				if !visited[next] {
					visited[next] = true
					component = append(component, next)
					queue = append(queue, next)
				}
			}
		}
		sort.Ints(component)
		components = append(components, component)
	}
	return components
}

// JoinAllWithBuffer grows every polygon by buffer before joining so that
// polygons separated by small gaps join, then shrinks the results back.
func JoinAllWithBuffer(polygons [][]geometry.Point3d, buffer, tol float64) [][]geometry.Point3d {
	var grown [][]geometry.Point3d
	for i, polygon := range polygons {
		g, ok := Buffer(polygon, buffer, tol)
		if !ok {
			logger().Warn("joinAllWithBuffer: could not buffer polygon", "index", i)
			continue
		}
		grown = append(grown, g)
	}

	var result [][]geometry.Point3d
	for i, joined := range JoinAll(grown, tol) {
		shrunk, ok := Buffer(joined, -buffer, tol)
		if !ok {
			logger().Warn("joinAllWithBuffer: could not shrink joined polygon", "index", i)
			continue
		}
		result = append(result, shrunk)
	}
	return result
}
