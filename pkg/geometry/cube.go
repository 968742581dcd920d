package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	// cubeDirectionThreshold is the largest |direction| treated as zero on an axis
	cubeDirectionThreshold = 1e-7
	// cubeDivisionScale stands in for 1/direction when direction is ~zero
	cubeDivisionScale = 1e15
)

// Cube is the axis-aligned cube spanning [-1, 1] on every axis
type Cube struct{}

// NewCube creates a new unit cube
func NewCube() *Cube {
	return &Cube{}
}

// LocalIntersect intersects the three axis slabs and keeps their overlap
func (c *Cube) LocalIntersect(ray core.Ray) []float64 {
	xtmin, xtmax := checkAxis(ray.Origin.X, ray.Direction.X)
	ytmin, ytmax := checkAxis(ray.Origin.Y, ray.Direction.Y)
	ztmin, ztmax := checkAxis(ray.Origin.Z, ray.Direction.Z)

	tmin := max(xtmin, ytmin, ztmin)
	tmax := min(xtmax, ytmax, ztmax)
	if tmin > tmax {
		return nil
	}
	return []float64{tmin, tmax}
}

// checkAxis returns the entry and exit t for the slab [-1, 1] on one axis
func checkAxis(origin, direction float64) (float64, float64) {
	tminNumerator := -1 - origin
	tmaxNumerator := 1 - origin

	var tmin, tmax float64
	if math.Abs(direction) > cubeDirectionThreshold {
		tmin = tminNumerator / direction
		tmax = tmaxNumerator / direction
	} else {
		tmin = tminNumerator * cubeDivisionScale
		tmax = tmaxNumerator * cubeDivisionScale
	}

	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}
	return tmin, tmax
}

// LocalNormalAt returns the axis of the face the point lies on
func (c *Cube) LocalNormalAt(point core.Tuple) core.Tuple {
	absX, absY, absZ := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxc := max(absX, absY, absZ)

	switch maxc {
	case absX:
		return core.NewVector(point.X, 0, 0)
	case absY:
		return core.NewVector(0, point.Y, 0)
	default:
		return core.NewVector(0, 0, point.Z)
	}
}
