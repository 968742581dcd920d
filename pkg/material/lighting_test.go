package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()

	if !m.Color.Equals(core.White) {
		t.Errorf("Expected white color, got %v", m.Color)
	}
	if m.Ambient != 0.1 || m.Diffuse != 0.9 || m.Specular != 0.9 || m.Shininess != 200 {
		t.Errorf("Unexpected Phong defaults: %+v", m)
	}
	if m.Reflective != 0 || m.Transparency != 0 || m.RefractiveIndex != 1.0 {
		t.Errorf("Unexpected optical defaults: %+v", m)
	}
	if m.Pattern != nil {
		t.Error("Expected no pattern by default")
	}

	g := Glass()
	if !g.IsTransparent() || g.RefractiveIndex != 1.5 {
		t.Errorf("Expected transparent glass with index 1.5, got %+v", g)
	}
}

func TestLighting(t *testing.T) {
	m := DefaultMaterial()
	position := core.NewPoint(0, 0, 0)
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name     string
		eyev     core.Tuple
		normalv  core.Tuple
		light    PointLight
		inShadow bool
		expected core.Color
	}{
		{
			name:     "eye between light and surface",
			eyev:     core.NewVector(0, 0, -1),
			normalv:  core.NewVector(0, 0, -1),
			light:    *NewPointLight(core.NewPoint(0, 0, -10), core.White),
			expected: core.NewColor(1.9, 1.9, 1.9),
		},
		{
			name:     "eye offset 45 degrees",
			eyev:     core.NewVector(0, s2, -s2),
			normalv:  core.NewVector(0, 0, -1),
			light:    *NewPointLight(core.NewPoint(0, 0, -10), core.White),
			expected: core.NewColor(1.0, 1.0, 1.0),
		},
		{
			name:     "light offset 45 degrees",
			eyev:     core.NewVector(0, 0, -1),
			normalv:  core.NewVector(0, 0, -1),
			light:    *NewPointLight(core.NewPoint(0, 10, -10), core.White),
			expected: core.NewColor(0.7364, 0.7364, 0.7364),
		},
		{
			name:     "eye in the path of the reflection",
			eyev:     core.NewVector(0, -s2, -s2),
			normalv:  core.NewVector(0, 0, -1),
			light:    *NewPointLight(core.NewPoint(0, 10, -10), core.White),
			expected: core.NewColor(1.6364, 1.6364, 1.6364),
		},
		{
			name:     "light behind the surface",
			eyev:     core.NewVector(0, 0, -1),
			normalv:  core.NewVector(0, 0, -1),
			light:    *NewPointLight(core.NewPoint(0, 0, 10), core.White),
			expected: core.NewColor(0.1, 0.1, 0.1),
		},
		{
			name:     "surface in shadow",
			eyev:     core.NewVector(0, 0, -1),
			normalv:  core.NewVector(0, 0, -1),
			light:    *NewPointLight(core.NewPoint(0, 0, -10), core.White),
			inShadow: true,
			expected: core.NewColor(0.1, 0.1, 0.1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lighting(m, nil, tt.light, position, tt.eyev, tt.normalv, tt.inShadow)
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLighting_WithPattern(t *testing.T) {
	m := DefaultMaterial()
	m.Pattern = NewStripePattern(core.White, core.Black)
	m.Ambient = 1
	m.Diffuse = 0
	m.Specular = 0

	eyev := core.NewVector(0, 0, -1)
	normalv := core.NewVector(0, 0, -1)
	light := *NewPointLight(core.NewPoint(0, 0, -10), core.White)

	c1 := Lighting(m, nil, light, core.NewPoint(0.9, 0, 0), eyev, normalv, false)
	c2 := Lighting(m, nil, light, core.NewPoint(1.1, 0, 0), eyev, normalv, false)

	if !c1.Equals(core.White) {
		t.Errorf("Expected white at x=0.9, got %v", c1)
	}
	if !c2.Equals(core.Black) {
		t.Errorf("Expected black at x=1.1, got %v", c2)
	}
}

func TestLighting_ColoredLight(t *testing.T) {
	m := DefaultMaterial()
	m.Color = core.NewColor(1, 0.5, 0)
	m.Diffuse = 0
	m.Specular = 0
	m.Ambient = 1

	light := *NewPointLight(core.NewPoint(0, 0, -10), core.NewColor(0.5, 1, 1))
	got := Lighting(m, nil, light, core.NewPoint(0, 0, 0), core.NewVector(0, 0, -1), core.NewVector(0, 0, -1), false)

	if expected := core.NewColor(0.5, 0.5, 0); !got.Equals(expected) {
		t.Errorf("Expected component-wise product %v, got %v", expected, got)
	}
}
