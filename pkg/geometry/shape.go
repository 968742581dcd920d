package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NoNode marks a shape or node that has no scene-graph id or parent
const NoNode = -1

// Shape places a primitive in the world with a transform and material.
// All cached matrices are computed when the transform is set, so a shape
// is safe for concurrent reads once scene construction is done.
type Shape struct {
	Material material.Material

	primitive        Primitive
	transform        core.Matrix
	inverse          core.Matrix
	inverseTranspose core.Matrix

	// Scene-graph membership, set by Group.AddShape
	graph  *Group
	id     int
	parent int
}

// NewShape wraps a primitive with an identity transform and the default material
func NewShape(p Primitive) *Shape {
	return &Shape{
		Material:         material.DefaultMaterial(),
		primitive:        p,
		transform:        core.Identity(),
		inverse:          core.Identity(),
		inverseTranspose: core.Identity(),
		id:               NoNode,
		parent:           NoNode,
	}
}

// Primitive returns the wrapped primitive
func (s *Shape) Primitive() Primitive {
	return s.primitive
}

// Transform returns the object-to-parent transform
func (s *Shape) Transform() core.Matrix {
	return s.transform
}

// Inverse returns the cached inverse transform
func (s *Shape) Inverse() core.Matrix {
	return s.inverse
}

// SetTransform sets the transform and caches its inverse and inverse
// transpose. A singular matrix is rejected and the shape is left unchanged.
func (s *Shape) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("shape transform: %w", err)
	}
	s.transform = m
	s.inverse = inv
	s.inverseTranspose = inv.Transpose()
	return nil
}

// ID returns the shape's scene-graph node id, or NoNode
func (s *Shape) ID() int {
	return s.id
}

// Parent returns the id of the transform node holding the shape, or NoNode
func (s *Shape) Parent() int {
	return s.parent
}

// Intersect transforms a ray into object space and intersects the primitive.
// Rays handed in by a Group are already in the parent node's space.
func (s *Shape) Intersect(ray core.Ray) []Intersection {
	localRay := ray.Transform(s.inverse)
	ts := s.primitive.LocalIntersect(localRay)
	if len(ts) == 0 {
		return nil
	}

	xs := make([]Intersection, len(ts))
	for i, t := range ts {
		xs[i] = Intersection{T: t, Object: s}
	}
	return xs
}

// WorldToObject converts a world point into object space, passing through
// every ancestor transform when the shape is part of a scene graph
func (s *Shape) WorldToObject(point core.Tuple) core.Tuple {
	if s.graph != nil && s.parent != NoNode {
		point = s.graph.worldToLocal(s.parent, point)
	}
	return s.inverse.MultiplyTuple(point)
}

// NormalToWorld converts an object-space normal back to world space,
// normalizing after each step up the scene graph
func (s *Shape) NormalToWorld(normal core.Tuple) core.Tuple {
	n := s.inverseTranspose.MultiplyTuple(normal).AsVector().Normalize()
	if s.graph != nil && s.parent != NoNode {
		n = s.graph.normalToWorld(s.parent, n)
	}
	return n
}

// NormalAt returns the world-space surface normal at a world point
func (s *Shape) NormalAt(worldPoint core.Tuple) core.Tuple {
	localPoint := s.WorldToObject(worldPoint)
	localNormal := s.primitive.LocalNormalAt(localPoint)
	return s.NormalToWorld(localNormal)
}
