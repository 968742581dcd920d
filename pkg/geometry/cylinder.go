package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// cylinderParallelThreshold is the smallest quadratic coefficient treated as
// non-parallel to the y axis
const cylinderParallelThreshold = 1e-8

// Cylinder is a unit-radius cylinder around the y axis, optionally truncated
// to (Minimum, Maximum) and optionally capped
type Cylinder struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates an infinite, open cylinder
func NewCylinder() *Cylinder {
	return &Cylinder{
		Minimum: math.Inf(-1),
		Maximum: math.Inf(1),
		Closed:  false,
	}
}

// NewTruncatedCylinder creates a cylinder bounded to (minimum, maximum)
func NewTruncatedCylinder(minimum, maximum float64, closed bool) *Cylinder {
	return &Cylinder{
		Minimum: minimum,
		Maximum: maximum,
		Closed:  closed,
	}
}

// LocalIntersect returns the lateral roots inside the y bounds followed by
// any cap crossings
func (c *Cylinder) LocalIntersect(ray core.Ray) []float64 {
	var xs []float64

	// Quadratic in x and z only
	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z

	// a ≈ 0 means the ray runs parallel to the axis and can only hit the caps
	if math.Abs(a) >= cylinderParallelThreshold {
		b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		for _, t := range []float64{t0, t1} {
			y := ray.Origin.Y + t*ray.Direction.Y
			if c.Minimum < y && y < c.Maximum {
				xs = append(xs, t)
			}
		}
	}

	return c.intersectCaps(ray, xs)
}

// intersectCaps appends the end-cap crossings of a closed, finite cylinder
func (c *Cylinder) intersectCaps(ray core.Ray, xs []float64) []float64 {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	if !math.IsInf(c.Minimum, 0) {
		t := (c.Minimum - ray.Origin.Y) / ray.Direction.Y
		if checkCap(ray, t) {
			xs = append(xs, t)
		}
	}
	if !math.IsInf(c.Maximum, 0) {
		t := (c.Maximum - ray.Origin.Y) / ray.Direction.Y
		if checkCap(ray, t) {
			xs = append(xs, t)
		}
	}
	return xs
}

// checkCap reports whether the ray at t lies within the unit radius
func checkCap(ray core.Ray, t float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= 1
}

// LocalNormalAt returns (0, ±1, 0) on a cap and (x, 0, z) on the side
func (c *Cylinder) LocalNormalAt(point core.Tuple) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if c.Closed && dist < 1 {
		if point.Y >= c.Maximum-core.Epsilon {
			return core.NewVector(0, 1, 0)
		}
		if point.Y <= c.Minimum+core.Epsilon {
			return core.NewVector(0, -1, 0)
		}
	}

	return core.NewVector(point.X, 0, point.Z)
}
