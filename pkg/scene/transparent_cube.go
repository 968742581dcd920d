package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTransparentCubeScene places a tinted transparent cube over a ring floor
func NewTransparentCubeScene() (*Scene, error) {
	w := NewWorld()
	w.Light = defaultLight()

	floor := geometry.NewShape(geometry.NewPlane())
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Specular = 0
	floor.Material.Pattern = material.NewRingPattern(core.White, core.Black)
	w.AddObjects(floor)

	cube, err := transformed(geometry.NewCube(), core.Translation(-0.5, 1, 0.5))
	if err != nil {
		return nil, err
	}
	cube.Material.Color = core.NewColor(0.1, 1, 0.5)
	cube.Material.Diffuse = 0.7
	cube.Material.Specular = 0.3
	cube.Material.Transparency = 0.6
	cube.Material.RefractiveIndex = 0.8
	if _, err := w.Graph.AddShape(cube, geometry.RootID); err != nil {
		return nil, err
	}

	return &Scene{
		Name:   "transparent-cube",
		World:  w,
		Camera: overheadCamera(),
	}, nil
}
