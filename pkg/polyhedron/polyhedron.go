// Package polyhedron validates that a set of planar faces forms a closed,
// consistently wound solid and computes its volume.
package polyhedron

import (
	"log/slog"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/philipparndt/gogeom/pkg/geometry"
)

// DefaultTolerance is the point equality tolerance used for edge matching (half an inch)
const DefaultTolerance = 0.0127

func logger() *slog.Logger {
	return slog.Default().With("component", "polyhedron")
}

// Polyhedron is a set of faces checked for enclosure and orientation on construction
type Polyhedron struct {
	surfaces []*Surface3d
	tol      float64

	uniqueVertices []geometry.Point3d

	enclosed            bool
	hasConflicts        bool
	completelyInsideOut bool
	addedColinearPoints bool
}

// New runs edge matching with DefaultTolerance
func New(surfaces []*Surface3d) *Polyhedron {
	return NewWithTolerance(surfaces, DefaultTolerance)
}

// NewWithTolerance runs edge matching, inserts missing collinear vertices if
// the faces are not enclosed, and works out whether the solid is inside out
func NewWithTolerance(surfaces []*Surface3d, tol float64) *Polyhedron {
	p := &Polyhedron{surfaces: surfaces, tol: tol}

	p.performEdgeMatching()
	p.enclosed = p.allEdgesTwo()

	if !p.enclosed {
		p.addedColinearPoints = p.updateZonePolygonsForMissingColinearPoints()
		if p.addedColinearPoints {
			p.resetEdgeMatching()
			p.performEdgeMatching()
			p.enclosed = p.allEdgesTwo()
		}
	}

	// an open surface has no meaningful volume sign
	if p.enclosed && !p.hasConflicts && p.calcPolyhedronVolume() < 0 {
		p.completelyInsideOut = true
	}
	return p
}

// Surfaces returns the faces, including any inserted collinear vertices
func (p *Polyhedron) Surfaces() []*Surface3d {
	return p.surfaces
}

func (p *Polyhedron) NumSurfaces() int {
	return len(p.surfaces)
}

// IsEnclosedVolume reports whether every edge is shared by exactly two face occurrences
func (p *Polyhedron) IsEnclosedVolume() bool {
	return p.enclosed
}

// HasAnySurfaceWithIncorrectOrientation is true if two faces traverse a shared
// edge in the same direction or if the solid is completely inside out
func (p *Polyhedron) HasAnySurfaceWithIncorrectOrientation() bool {
	return p.hasConflicts || p.completelyInsideOut
}

// IsCompletelyInsideOut is true if the faces are consistently wound but every one points inward
func (p *Polyhedron) IsCompletelyInsideOut() bool {
	return p.completelyInsideOut
}

// HasAddedColinearPoints reports whether construction had to split edges to match faces
func (p *Polyhedron) HasAddedColinearPoints() bool {
	return p.addedColinearPoints
}

func (p *Polyhedron) resetEdgeMatching() {
	p.hasConflicts = false
	for _, s := range p.surfaces {
		for _, e := range s.edges {
			e.reset()
		}
	}
}

func (p *Polyhedron) performEdgeMatching() {
	for i, s1 := range p.surfaces {
		for _, s2 := range p.surfaces[i+1:] {
			for _, e1 := range s1.edges {
				for _, e2 := range s2.edges {
					if !e1.equal(e2, p.tol) || e1.containsSurfNum(s2.SurfNum) {
						continue
					}
					e1.surfNums = append(e1.surfNums, s2.SurfNum)
					e2.surfNums = append(e2.surfNums, s1.SurfNum)
					if !e1.reverseEqual(e2, p.tol) {
						e1.conflicted = true
						e2.conflicted = true
						p.hasConflicts = true
					}
				}
			}
		}
	}

	// a slit cutting a hole into a face traverses the same edge twice
	for _, s := range p.surfaces {
		for i, e1 := range s.edges {
			for _, e2 := range s.edges[i+1:] {
				if e1.Count() == 1 && e2.Count() == 1 && e1.reverseEqual(e2, p.tol) {
					e1.surfNums = append(e1.surfNums, s.SurfNum)
					e2.surfNums = append(e2.surfNums, s.SurfNum)
				}
			}
		}
	}
}

func (p *Polyhedron) allEdgesTwo() bool {
	for _, s := range p.surfaces {
		for _, e := range s.edges {
			if e.Count() != 2 {
				return false
			}
		}
	}
	return true
}

// EdgesNotTwo returns the distinct edges not shared by exactly two face occurrences
func (p *Polyhedron) EdgesNotTwo() []*Surface3dEdge {
	var result []*Surface3dEdge
	for _, s := range p.surfaces {
		for _, e := range s.edges {
			if e.Count() == 2 {
				continue
			}
			duplicate := false
			for _, r := range result {
				if r.equal(e, p.tol) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				result = append(result, e)
			}
		}
	}
	return result
}

type indexedVertex struct {
	p    geometry.Point3d
	rect rtreego.Rect
}

func (v *indexedVertex) Bounds() rtreego.Rect {
	return v.rect
}

func boxAround(p geometry.Point3d, tol float64) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{p.X - tol, p.Y - tol, p.Z - tol},
		[]float64{2 * tol, 2 * tol, 2 * tol},
	)
}

// UniqueVertices returns the face vertices with duplicates within tolerance removed, in first seen order
func (p *Polyhedron) UniqueVertices() []geometry.Point3d {
	if p.uniqueVertices != nil {
		return p.uniqueVertices
	}

	tree := rtreego.NewTree(3, 4, 16)
	var unique []geometry.Point3d
	for _, s := range p.surfaces {
		for _, v := range s.Vertices {
			box, err := boxAround(v, p.tol)
			if err != nil {
				logger().Error("cannot index vertex", "vertex", v.String(), "error", err)
				continue
			}
			seen := false
			for _, hit := range tree.SearchIntersect(box) {
				if hit.(*indexedVertex).p.IsAlmostEqual(v, p.tol) {
					seen = true
					break
				}
			}
			if seen {
				continue
			}
			tree.Insert(&indexedVertex{p: v, rect: box})
			unique = append(unique, v)
		}
	}
	p.uniqueVertices = unique
	return unique
}

// updateZonePolygonsForMissingColinearPoints splits every edge that passes
// through a vertex of another face. Returns true if any vertex was inserted.
func (p *Polyhedron) updateZonePolygonsForMissingColinearPoints() bool {
	unique := p.UniqueVertices()
	added := false

	for _, s := range p.surfaces {
		// every unique vertex can be inserted into a face at most once
		inserted, capped := p.insertColinearVertices(s, unique, len(unique))
		if capped {
			logger().Warn("giving up inserting collinear vertices", "surface", s.Name)
		}
		if inserted > 0 {
			added = true
		}
	}
	return added
}

// insertColinearVertices splits edges of s at unique vertices until none lie
// on an edge or limit insertions were made. capped reports hitting the limit
// with vertices still left to insert.
func (p *Polyhedron) insertColinearVertices(s *Surface3d, unique []geometry.Point3d, limit int) (inserted int, capped bool) {
	for {
		i, v, found := p.findColinearVertex(s, unique)
		if !found {
			return inserted, false
		}
		if inserted == limit {
			return inserted, true
		}
		logger().Debug("inserting collinear vertex", "surface", s.Name, "vertex", v.String())
		s.splitEdge(i, v)
		inserted++
	}
}

// findColinearVertex returns the first edge of s with a unique vertex strictly between its ends
func (p *Polyhedron) findColinearVertex(s *Surface3d, unique []geometry.Point3d) (int, geometry.Point3d, bool) {
	for i, e := range s.edges {
		for _, v := range unique {
			if v.IsAlmostEqual(e.start, p.tol) || v.IsAlmostEqual(e.end, p.tol) {
				continue
			}
			if geometry.GetDistancePointToLineSegment(v, e.start, e.end) < p.tol {
				return i, v, true
			}
		}
	}
	return 0, geometry.Point3d{}, false
}

// FindSurfacesWithIncorrectOrientation returns the faces believed to be wound
// backwards, sorted by name. For every conflicted edge the adjacent face with
// the larger share of conflicted edges is accused. On a polyhedron that is not
// enclosed this can return false negatives.
func (p *Polyhedron) FindSurfacesWithIncorrectOrientation() []*Surface3d {
	if p.completelyInsideOut {
		return sortedByName(p.surfaces)
	}
	if !p.hasConflicts {
		return nil
	}
	if !p.enclosed {
		logger().Warn("polyhedron is not enclosed, surfaces with incorrect orientation may be missed")
	}

	bySurfNum := make(map[int]*Surface3d, len(p.surfaces))
	for _, s := range p.surfaces {
		bySurfNum[s.SurfNum] = s
	}

	accused := make(map[int]*Surface3d)
	for _, s := range p.surfaces {
		for _, e := range s.edges {
			if !e.conflicted {
				continue
			}
			for _, other := range e.surfNums {
				o, ok := bySurfNum[other]
				if !ok || other == s.SurfNum {
					continue
				}
				switch fs, fo := s.conflictedFraction(), o.conflictedFraction(); {
				case fs > fo:
					accused[s.SurfNum] = s
				case fo > fs:
					accused[o.SurfNum] = o
				}
			}
		}
	}

	result := make([]*Surface3d, 0, len(accused))
	for _, s := range accused {
		result = append(result, s)
	}
	return sortedByName(result)
}

func sortedByName(surfaces []*Surface3d) []*Surface3d {
	result := append([]*Surface3d(nil), surfaces...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
