package geometry

import (
	"math"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Computations holds the values derived from a hit that shading needs
type Computations struct {
	T      float64
	Object *Shape

	Point   core.Tuple
	EyeV    core.Tuple
	NormalV core.Tuple
	Inside  bool

	ReflectV   core.Tuple
	OverPoint  core.Tuple // offset along the normal for shadow and reflection rays
	UnderPoint core.Tuple // offset against the normal for refraction rays

	// Refractive indices on the incoming (N1) and outgoing (N2) sides
	N1, N2 float64
}

// PrepareComputations derives shading values for hit. xs is the full sorted
// list of intersections along ray and is used to find the refractive
// indices on either side of the surface.
func PrepareComputations(hit Intersection, ray core.Ray, xs []Intersection) Computations {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
		Point:  ray.Position(hit.T),
		EyeV:   ray.Direction.Negate(),
		N1:     material.RefractiveVacuum,
		N2:     material.RefractiveVacuum,
	}

	comps.NormalV = hit.Object.NormalAt(comps.Point)
	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Negate()
	}

	comps.ReflectV = ray.Direction.Reflect(comps.NormalV)
	offset := comps.NormalV.Multiply(core.Epsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Subtract(offset)

	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices walks xs with a stack of shapes the ray is inside of
func refractiveIndices(hit Intersection, xs []Intersection) (n1, n2 float64) {
	n1, n2 = material.RefractiveVacuum, material.RefractiveVacuum
	var containers []*Shape

	top := func() float64 {
		if len(containers) == 0 {
			return material.RefractiveVacuum
		}
		return containers[len(containers)-1].Material.RefractiveIndex
	}

	for _, x := range xs {
		isHit := x == hit
		if isHit {
			n1 = top()
		}

		if i := slices.Index(containers, x.Object); i >= 0 {
			containers = slices.Delete(containers, i, i+1)
		} else {
			containers = append(containers, x.Object)
		}

		if isHit {
			n2 = top()
			break
		}
	}
	return n1, n2
}

// Schlick approximates the fraction of light reflected at the surface
func Schlick(comps Computations) float64 {
	cos := comps.EyeV.Dot(comps.NormalV)

	// Total internal reflection can only happen going into a less dense medium
	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2T := n * n * (1 - cos*cos)
		if sin2T > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
