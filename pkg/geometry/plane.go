package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// planeParallelThreshold is the smallest |direction.y| that still crosses the plane
const planeParallelThreshold = 1e-6

// Plane is the infinite x-z plane through the origin
type Plane struct{}

// NewPlane creates a new plane
func NewPlane() *Plane {
	return &Plane{}
}

// LocalIntersect returns the single crossing of the plane, or nil for
// parallel and coplanar rays
func (p *Plane) LocalIntersect(ray core.Ray) []float64 {
	if math.Abs(ray.Direction.Y) < planeParallelThreshold {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

// LocalNormalAt is constant everywhere on the plane
func (p *Plane) LocalNormalAt(point core.Tuple) core.Tuple {
	return core.NewVector(0, 1, 0)
}
