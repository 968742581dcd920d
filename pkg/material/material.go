package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Common refractive indices
const (
	RefractiveVacuum  = 1.0
	RefractiveAir     = 1.00029
	RefractiveWater   = 1.333
	RefractiveGlass   = 1.5
	RefractiveDiamond = 2.417
)

// Material holds the Phong surface attributes plus the reflection and
// refraction coefficients used by the world shader.
type Material struct {
	Color           core.Color
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
	Pattern         Pattern // overrides Color when set
}

// DefaultMaterial returns a white, non-reflective, opaque material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: RefractiveVacuum,
	}
}

// Glass returns the default material made fully transparent with the
// refractive index of glass
func Glass() Material {
	m := DefaultMaterial()
	m.Transparency = 1
	m.RefractiveIndex = RefractiveGlass
	return m
}

// IsReflective reports whether the material contributes a reflected color
func (m Material) IsReflective() bool {
	return m.Reflective > core.Epsilon
}

// IsTransparent reports whether the material contributes a refracted color
func (m Material) IsTransparent() bool {
	return m.Transparency > core.Epsilon
}
