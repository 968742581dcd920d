package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// triangleParallelThreshold is the smallest |det| that is not treated as a
// ray lying in the triangle's plane
const triangleParallelThreshold = 1e-8

// Triangle is a flat triangle with precomputed edges and face normal
type Triangle struct {
	P1, P2, P3 core.Tuple
	E1, E2     core.Tuple
	Normal     core.Tuple
}

// NewTriangle creates a triangle from three points
func NewTriangle(p1, p2, p3 core.Tuple) *Triangle {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	return &Triangle{
		P1:     p1,
		P2:     p2,
		P3:     p3,
		E1:     e1,
		E2:     e2,
		Normal: e2.Cross(e1).Normalize(),
	}
}

// LocalIntersect uses the Möller–Trumbore algorithm
func (tr *Triangle) LocalIntersect(ray core.Ray) []float64 {
	dirCrossE2 := ray.Direction.Cross(tr.E2)
	det := tr.E1.Dot(dirCrossE2)
	if math.Abs(det) < triangleParallelThreshold {
		return nil
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Subtract(tr.P1)
	u := f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return nil
	}

	originCrossE1 := p1ToOrigin.Cross(tr.E1)
	v := f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return nil
	}

	return []float64{f * tr.E2.Dot(originCrossE1)}
}

// LocalNormalAt returns the face normal regardless of the point
func (tr *Triangle) LocalNormalAt(point core.Tuple) core.Tuple {
	return tr.Normal
}
