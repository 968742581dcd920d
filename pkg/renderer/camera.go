package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultMaxDepth bounds reflection and refraction recursion per pixel
const DefaultMaxDepth = 5

// Camera maps pixels on a virtual canvas one unit in front of the eye to
// world-space rays
type Camera struct {
	HSize       int     // Canvas width in pixels
	VSize       int     // Canvas height in pixels
	FieldOfView float64 // Radians, spanning the longer canvas side
	MaxDepth    int     // Recursion budget passed to ColorAt

	transform core.Matrix
	inverse   core.Matrix

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera at the origin looking down -z
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		MaxDepth:    DefaultMaxDepth,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c
}

// NewCameraFromConfig creates a camera positioned by a scene's camera config
func NewCameraFromConfig(cfg scene.CameraConfig) (*Camera, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, cfg.Width, cfg.Height)
	}
	c := NewCamera(cfg.Width, cfg.Height, cfg.FieldOfView)
	if err := c.SetTransform(cfg.ViewTransform()); err != nil {
		return nil, err
	}
	return c, nil
}

// SetTransform sets the view transform and caches its inverse
func (c *Camera) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("camera transform: %w", err)
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// Transform returns the view transform
func (c *Camera) Transform() core.Matrix { return c.transform }

func (c *Camera) HalfWidth() float64  { return c.halfWidth }
func (c *Camera) HalfHeight() float64 { return c.halfHeight }
func (c *Camera) PixelSize() float64  { return c.pixelSize }

// RayForPixel returns the ray from the eye through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.NewPoint(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.NewPoint(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}
