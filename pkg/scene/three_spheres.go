package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewThreeSpheresScene creates a checkered floor with three spheres held in
// the scene graph
func NewThreeSpheresScene() (*Scene, error) {
	w := NewWorld()
	w.Light = defaultLight()

	floor := geometry.NewShape(geometry.NewPlane())
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Specular = 0
	floor.Material.Pattern = material.NewCheckerPattern(core.White, core.Black)
	w.AddObjects(floor)

	spheres := []struct {
		transform core.Matrix
		color     core.Color
	}{
		{core.Translation(-1.5, 0.33, -0.75).Multiply(core.Scaling(0.33, 0.33, 0.33)), core.NewColor(1, 0.8, 0.1)},
		{core.Translation(-0.5, 1, 0.5), core.NewColor(0.1, 1, 0.5)},
		{core.Translation(1.5, 0.5, -0.5).Multiply(core.Scaling(0.5, 0.5, 0.5)), core.NewColor(0.5, 1, 0.1)},
	}

	for _, sp := range spheres {
		s, err := transformed(geometry.NewSphere(), sp.transform)
		if err != nil {
			return nil, err
		}
		s.Material.Color = sp.color
		s.Material.Diffuse = 0.7
		s.Material.Specular = 0.3
		if _, err := w.Graph.AddShape(s, geometry.RootID); err != nil {
			return nil, err
		}
	}

	return &Scene{
		Name:   "three-spheres",
		World:  w,
		Camera: overheadCamera(),
	}, nil
}

// overheadCamera looks slightly down at the origin from in front
func overheadCamera() CameraConfig {
	return CameraConfig{
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 2,
		From:        core.NewPoint(0, 1.5, -5),
		To:          core.NewPoint(0, 1, 0),
		Up:          core.NewVector(0, 1, 0),
	}
}
