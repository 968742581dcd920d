package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Primitive is the local-space intersect and normal contract every shape
// kind implements. Rays and points passed in are already in the
// primitive's own coordinate frame.
type Primitive interface {
	// LocalIntersect returns the t values where the ray crosses the surface,
	// or nil on a miss
	LocalIntersect(ray core.Ray) []float64
	// LocalNormalAt returns the surface normal at a point on the primitive
	LocalNormalAt(point core.Tuple) core.Tuple
}
