package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestNewCamera(t *testing.T) {
	c := NewCamera(160, 120, math.Pi/2)

	if c.HSize != 160 || c.VSize != 120 {
		t.Errorf("Expected 160x120, got %dx%d", c.HSize, c.VSize)
	}
	if !c.Transform().Equals(core.Identity()) {
		t.Errorf("Expected identity transform")
	}
	if c.MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected max depth %d, got %d", DefaultMaxDepth, c.MaxDepth)
	}
}

func TestCamera_PixelSize(t *testing.T) {
	tests := []struct {
		name         string
		hsize, vsize int
	}{
		{"horizontal canvas", 200, 125},
		{"vertical canvas", 125, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(tt.hsize, tt.vsize, math.Pi/2)
			if math.Abs(c.PixelSize()-0.01) > core.Epsilon {
				t.Errorf("Expected pixel size 0.01, got %v", c.PixelSize())
			}
		})
	}

	c := NewCamera(200, 125, math.Pi/2)
	if math.Abs(c.HalfWidth()-1) > core.Epsilon || math.Abs(c.HalfHeight()-0.625) > core.Epsilon {
		t.Errorf("Expected half extents (1, 0.625), got (%v, %v)", c.HalfWidth(), c.HalfHeight())
	}
}

func TestCamera_RayForPixel(t *testing.T) {
	transformed := NewCamera(201, 101, math.Pi/2)
	if err := transformed.SetTransform(core.RotationY(math.Pi / 4).Multiply(core.Translation(0, -2, 5))); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		camera    *Camera
		px, py    int
		origin    core.Tuple
		direction core.Tuple
	}{
		{
			name:      "center of the canvas",
			camera:    NewCamera(201, 101, math.Pi/2),
			px:        100,
			py:        50,
			origin:    core.NewPoint(0, 0, 0),
			direction: core.NewVector(0, 0, -1),
		},
		{
			name:      "corner of the canvas",
			camera:    NewCamera(201, 101, math.Pi/2),
			px:        0,
			py:        0,
			origin:    core.NewPoint(0, 0, 0),
			direction: core.NewVector(0.66519, 0.33259, -0.66851),
		},
		{
			name:      "transformed camera",
			camera:    transformed,
			px:        100,
			py:        50,
			origin:    core.NewPoint(0, 2, -5),
			direction: core.NewVector(math.Sqrt2/2, 0, -math.Sqrt2/2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.camera.RayForPixel(tt.px, tt.py)
			if !r.Origin.Equals(tt.origin) {
				t.Errorf("Expected origin %v, got %v", tt.origin, r.Origin)
			}
			if !r.Direction.Equals(tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, r.Direction)
			}
		})
	}
}

func TestCamera_SetTransformSingular(t *testing.T) {
	c := NewCamera(10, 10, math.Pi/2)
	err := c.SetTransform(core.Scaling(0, 1, 1))
	if !errors.Is(err, core.ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
	if !c.Transform().Equals(core.Identity()) {
		t.Errorf("Expected transform to be unchanged after a failed set")
	}
}

func TestNewCameraFromConfig(t *testing.T) {
	cfg := scene.DefaultCameraConfig()
	c, err := NewCameraFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewCameraFromConfig failed: %v", err)
	}
	if c.HSize != cfg.Width || c.VSize != cfg.Height {
		t.Errorf("Expected %dx%d, got %dx%d", cfg.Width, cfg.Height, c.HSize, c.VSize)
	}

	r := c.RayForPixel(c.HSize/2, c.VSize/2)
	if !r.Origin.Equals(cfg.From) {
		t.Errorf("Expected ray origin at the eye %v, got %v", cfg.From, r.Origin)
	}

	cfg.Width = 0
	if _, err := NewCameraFromConfig(cfg); !errors.Is(err, ErrInvalidCanvas) {
		t.Errorf("Expected ErrInvalidCanvas, got %v", err)
	}
}
