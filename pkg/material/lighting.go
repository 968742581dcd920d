package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Lighting evaluates the Phong reflection model for one point light.
// object may be nil, in which case patterns are looked up at the world point.
// The result is not clamped.
func Lighting(m Material, object Object, light PointLight, point, eyev, normalv core.Tuple, inShadow bool) core.Color {
	baseColor := m.Color
	if m.Pattern != nil {
		baseColor = PatternAtObject(m.Pattern, object, point)
	}

	effectiveColor := baseColor.Hadamard(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	lightv := light.Position.Subtract(point).Normalize()
	lightDotNormal := lightv.Dot(normalv)
	if lightDotNormal <= 0 {
		// Light is on the other side of the surface
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectv := lightv.Negate().Reflect(normalv)
	reflectDotEye := reflectv.Dot(eyev)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
