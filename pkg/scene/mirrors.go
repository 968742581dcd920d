package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorsScene puts a glass-coated sphere between two parallel mirrors.
// Every camera ray bounces until the depth budget runs out.
func NewMirrorsScene() (*Scene, error) {
	w := NewWorld()
	// The light sits between the mirrors so they do not shadow each other
	w.Light = material.NewPointLight(core.NewPoint(-2, 0.5, -3), core.White)

	lower, err := transformed(geometry.NewPlane(), core.Translation(0, -1, 0))
	if err != nil {
		return nil, err
	}
	upper, err := transformed(geometry.NewPlane(), core.Translation(0, 1, 0))
	if err != nil {
		return nil, err
	}
	for _, mirror := range []*geometry.Shape{lower, upper} {
		mirror.Material.Color = core.NewColor(0.2, 0.2, 0.25)
		mirror.Material.Reflective = 1
		mirror.Material.Specular = 0
	}
	w.AddObjects(lower, upper)

	ball, err := transformed(geometry.NewSphere(), core.Scaling(0.5, 0.5, 0.5))
	if err != nil {
		return nil, err
	}
	ball.Material.Color = core.NewColor(0.9, 0.2, 0.2)
	ball.Material.Reflective = 0.3
	ball.Material.Transparency = 0.3
	ball.Material.RefractiveIndex = 1.5
	w.AddObjects(ball)

	camera := DefaultCameraConfig()
	camera.From = core.NewPoint(0, 0, -4)

	return &Scene{
		Name:   "mirrors",
		World:  w,
		Camera: camera,
	}, nil
}
