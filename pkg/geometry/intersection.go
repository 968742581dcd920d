package geometry

import (
	"cmp"
	"slices"
)

// Intersection records where along a ray a shape was crossed
type Intersection struct {
	T      float64
	Object *Shape
}

// NewIntersection creates a new intersection
func NewIntersection(t float64, object *Shape) Intersection {
	return Intersection{T: t, Object: object}
}

// Intersections collects intersections into a slice
func Intersections(xs ...Intersection) []Intersection {
	return xs
}

// SortIntersections orders intersections by ascending t. Equal t values
// keep their input order.
func SortIntersections(xs []Intersection) {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the intersection with the lowest strictly positive t.
// The input does not need to be sorted; among equal t values the first
// one encountered wins.
func Hit(xs []Intersection) (Intersection, bool) {
	var hit Intersection
	found := false
	for _, x := range xs {
		if x.T > 0 && (!found || x.T < hit.T) {
			hit = x
			found = true
		}
	}
	return hit, found
}
