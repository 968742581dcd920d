package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pattern provides spatially-varying colors for materials
type Pattern interface {
	// PatternAt returns the color at a point in pattern space
	PatternAt(point core.Tuple) core.Color
	// Inverse returns the inverse of the pattern's own transform
	Inverse() core.Matrix
}

// Object converts world-space points into the space of the shape being shaded
type Object interface {
	WorldToObject(point core.Tuple) core.Tuple
}

// PatternAtObject looks up a pattern color for a world point on object.
// The point is moved into object space and then into pattern space.
func PatternAtObject(p Pattern, object Object, worldPoint core.Tuple) core.Color {
	objectPoint := worldPoint
	if object != nil {
		objectPoint = object.WorldToObject(worldPoint)
	}
	patternPoint := p.Inverse().MultiplyTuple(objectPoint)
	return p.PatternAt(patternPoint)
}

// patternTransform stores a pattern transform and its cached inverse
type patternTransform struct {
	transform core.Matrix
	inverse   core.Matrix
}

func identityTransform() patternTransform {
	return patternTransform{transform: core.Identity(), inverse: core.Identity()}
}

// SetTransform sets the pattern transform, failing if it cannot be inverted
func (pt *patternTransform) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("pattern transform: %w", err)
	}
	pt.transform = m
	pt.inverse = inv
	return nil
}

// Transform returns the pattern transform
func (pt *patternTransform) Transform() core.Matrix {
	return pt.transform
}

// Inverse returns the cached inverse of the pattern transform
func (pt *patternTransform) Inverse() core.Matrix {
	return pt.inverse
}

// SolidPattern returns the same color everywhere
type SolidPattern struct {
	patternTransform
	Color core.Color
}

// NewSolidPattern creates a uniform pattern
func NewSolidPattern(c core.Color) *SolidPattern {
	return &SolidPattern{patternTransform: identityTransform(), Color: c}
}

// PatternAt returns the solid color regardless of position
func (s *SolidPattern) PatternAt(point core.Tuple) core.Color {
	return s.Color
}

// StripePattern alternates A and B every unit along x
type StripePattern struct {
	patternTransform
	A, B core.Color
}

// NewStripePattern creates a stripe pattern
func NewStripePattern(a, b core.Color) *StripePattern {
	return &StripePattern{patternTransform: identityTransform(), A: a, B: b}
}

func (s *StripePattern) PatternAt(point core.Tuple) core.Color {
	if isEven(point.X) {
		return s.A
	}
	return s.B
}

// GradientPattern blends linearly from A to B across each unit of x
type GradientPattern struct {
	patternTransform
	A, B core.Color
}

// NewGradientPattern creates a gradient pattern
func NewGradientPattern(a, b core.Color) *GradientPattern {
	return &GradientPattern{patternTransform: identityTransform(), A: a, B: b}
}

func (g *GradientPattern) PatternAt(point core.Tuple) core.Color {
	fraction := point.X - math.Floor(point.X)
	return g.A.Add(g.B.Subtract(g.A).Multiply(fraction))
}

// RingPattern alternates A and B in concentric rings around the y axis
type RingPattern struct {
	patternTransform
	A, B core.Color
}

// NewRingPattern creates a ring pattern
func NewRingPattern(a, b core.Color) *RingPattern {
	return &RingPattern{patternTransform: identityTransform(), A: a, B: b}
}

func (r *RingPattern) PatternAt(point core.Tuple) core.Color {
	if isEven(math.Sqrt(point.X*point.X + point.Z*point.Z)) {
		return r.A
	}
	return r.B
}

// CheckerPattern alternates A and B in unit cubes
type CheckerPattern struct {
	patternTransform
	A, B core.Color
}

// NewCheckerPattern creates a 3D checker pattern
func NewCheckerPattern(a, b core.Color) *CheckerPattern {
	return &CheckerPattern{patternTransform: identityTransform(), A: a, B: b}
}

func (c *CheckerPattern) PatternAt(point core.Tuple) core.Color {
	sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
	if int64(sum)%2 == 0 {
		return c.A
	}
	return c.B
}

// isEven reports whether floor(v) is even
func isEven(v float64) bool {
	return int64(math.Floor(v))%2 == 0
}
