package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// NewHexagonScene builds a hexagon out of six rotated sides, each a sphere
// corner and a cylinder edge
func NewHexagonScene() (*Scene, error) {
	w := NewWorld()
	w.Light = defaultLight()

	for n := 0; n < 6; n++ {
		if err := addHexagonSide(w.Graph, geometry.RootID, n); err != nil {
			return nil, err
		}
	}

	return &Scene{
		Name:   "hexagon",
		World:  w,
		Camera: overheadCamera(),
	}, nil
}

func addHexagonSide(g *geometry.Group, parent, n int) error {
	side, err := g.AddMatrix(core.RotationY(float64(n)*math.Pi/3), parent)
	if err != nil {
		return err
	}

	corner, err := transformed(geometry.NewSphere(),
		core.Translation(0, 0, -1).Multiply(core.Scaling(0.25, 0.25, 0.25)))
	if err != nil {
		return err
	}
	if _, err := g.AddShape(corner, side); err != nil {
		return err
	}

	edge, err := transformed(geometry.NewTruncatedCylinder(0, 1, false),
		core.Translation(0, 0, -1).
			Multiply(core.RotationY(-math.Pi/6)).
			Multiply(core.RotationZ(-math.Pi/2)).
			Multiply(core.Scaling(0.25, 1, 0.25)))
	if err != nil {
		return err
	}
	_, err = g.AddShape(edge, side)
	return err
}
