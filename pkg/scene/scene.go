package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene pairs a world with the view it should be rendered from
type Scene struct {
	Name   string
	World  *World
	Camera CameraConfig
}

// CameraConfig describes the camera for a scene
type CameraConfig struct {
	Width       int        // Image width in pixels
	Height      int        // Image height in pixels
	FieldOfView float64    // Horizontal or vertical field of view in radians, whichever side is longer
	From        core.Tuple // Eye position
	To          core.Tuple // Point looked at
	Up          core.Tuple // Approximate up vector
}

// DefaultCameraConfig looks at the origin from five units down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       400,
		Height:      200,
		FieldOfView: math.Pi / 3,
		From:        core.NewPoint(0, 0, -5),
		To:          core.NewPoint(0, 0, 0),
		Up:          core.NewVector(0, 1, 0),
	}
}

// ViewTransform returns the world-to-camera transform for the config
func (c CameraConfig) ViewTransform() core.Matrix {
	return core.ViewTransform(c.From, c.To, c.Up)
}

// GetPrimitiveCount returns the total number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World.Shapes())
}

// transformed wraps p in a shape with the given transform
func transformed(p geometry.Primitive, transform core.Matrix) (*geometry.Shape, error) {
	s := geometry.NewShape(p)
	if err := s.SetTransform(transform); err != nil {
		return nil, err
	}
	return s, nil
}

// defaultLight is the light used by the built-in scenes
func defaultLight() *material.PointLight {
	return material.NewPointLight(core.NewPoint(-5, 10, -10), core.White)
}
