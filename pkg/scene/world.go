package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// World holds everything a ray can hit plus the single light.
// It is built once and only read while rendering.
type World struct {
	Light      *material.PointLight
	Objects    []*geometry.Shape // flat shapes outside the scene graph
	Graph      *geometry.Group
	Background core.Color
}

// NewWorld creates an empty world with no light
func NewWorld() *World {
	return &World{
		Graph:      geometry.NewGroup(),
		Background: core.Black,
	}
}

// DefaultWorld returns two concentric spheres lit from the upper left
func DefaultWorld() *World {
	w := NewWorld()
	w.Light = material.NewPointLight(core.NewPoint(-10, 10, -10), core.White)

	outer := geometry.NewShape(geometry.NewSphere())
	outer.Material.Color = core.NewColor(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewShape(geometry.NewSphere())
	// Uniform scaling is always invertible
	_ = inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w.AddObjects(outer, inner)
	return w
}

// AddObjects appends flat shapes to the world
func (w *World) AddObjects(shapes ...*geometry.Shape) {
	w.Objects = append(w.Objects, shapes...)
}

// Shapes returns every shape in the world, flat ones first
func (w *World) Shapes() []*geometry.Shape {
	shapes := append([]*geometry.Shape(nil), w.Objects...)
	if w.Graph != nil {
		shapes = append(shapes, w.Graph.Shapes()...)
	}
	return shapes
}

// Intersect returns every intersection of ray with the world sorted by t
func (w *World) Intersect(ray core.Ray) []geometry.Intersection {
	var xs []geometry.Intersection
	for _, s := range w.Objects {
		xs = append(xs, s.Intersect(ray)...)
	}
	if w.Graph != nil {
		xs = append(xs, w.Graph.Intersect(ray, geometry.RootID)...)
	}
	geometry.SortIntersections(xs)
	return xs
}

// IsShadowed reports whether something lies between point and the light
func (w *World) IsShadowed(point core.Tuple) bool {
	if w.Light == nil {
		return false
	}

	v := w.Light.Position.Subtract(point)
	distance := v.Magnitude()
	ray := core.NewRay(point, v.Normalize())

	hit, ok := geometry.Hit(w.Intersect(ray))
	return ok && hit.T < distance
}

// ShadeHit returns the color at a prepared hit. remaining bounds the depth
// of reflection and refraction rays.
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Material

	surface := core.Black
	if w.Light != nil {
		shadowed := w.IsShadowed(comps.OverPoint)
		surface = material.Lighting(m, comps.Object, *w.Light, comps.OverPoint, comps.EyeV, comps.NormalV, shadowed)
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.IsReflective() && m.IsTransparent() {
		reflectance := geometry.Schlick(comps)
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor traces a reflection ray from the hit
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Color {
	if remaining <= 0 || !comps.Object.Material.IsReflective() {
		return core.Black
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.ReflectV)
	c := w.ColorAt(reflectRay, remaining-1)
	return c.Multiply(comps.Object.Material.Reflective)
}

// RefractedColor traces a refraction ray through the hit using Snell's law.
// Total internal reflection yields black.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Color {
	if remaining <= 0 || !comps.Object.Material.IsTransparent() {
		return core.Black
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Multiply(nRatio*cosI - cosT).Subtract(comps.EyeV.Multiply(nRatio))
	refractRay := core.NewRay(comps.UnderPoint, direction)

	c := w.ColorAt(refractRay, remaining-1)
	return c.Multiply(comps.Object.Material.Transparency)
}

// ColorAt returns the color seen along ray, or the background on a miss
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit, ok := geometry.Hit(xs)
	if !ok {
		return w.Background
	}
	comps := geometry.PrepareComputations(hit, ray, xs)
	return w.ShadeHit(comps, remaining)
}
