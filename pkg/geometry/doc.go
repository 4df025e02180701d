// Package geometry provides the 3D value types (points, vectors, planes,
// transformations) and the free measurement functions used by the polygon
// and polyhedron engines.
//
// Polygons are plain []Point3d loops that are implicitly closed: the first
// vertex is never repeated at the end. Tolerances are always passed in by the
// caller; nothing here has an implicit default tolerance.
package geometry
