package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RootID is the id of the identity transform node every Group starts with
const RootID = 0

type nodeKind int

const (
	transformNode nodeKind = iota
	shapeNode
)

// node is one entry of the scene-graph arena
type node struct {
	kind     nodeKind
	parent   int
	children []int

	// Transform nodes only
	transform        core.Matrix
	inverse          core.Matrix
	inverseTranspose core.Matrix

	// Shape nodes only
	shape *Shape
}

// Group is an append-only scene graph of transform and shape nodes addressed
// by integer id. Shapes attach to transform nodes; transform nodes nest.
type Group struct {
	nodes []node
}

// NewGroup creates a scene graph holding only the identity root node
func NewGroup() *Group {
	return &Group{
		nodes: []node{{
			kind:             transformNode,
			parent:           NoNode,
			transform:        core.Identity(),
			inverse:          core.Identity(),
			inverseTranspose: core.Identity(),
		}},
	}
}

// Len returns the number of nodes, including the root
func (g *Group) Len() int {
	return len(g.nodes)
}

// AddMatrix inserts a transform node under parent and returns its id
func (g *Group) AddMatrix(m core.Matrix, parent int) (int, error) {
	if err := g.checkParent(parent); err != nil {
		return NoNode, err
	}
	inv, err := m.Inverse()
	if err != nil {
		return NoNode, fmt.Errorf("group transform: %w", err)
	}

	id := len(g.nodes)
	g.nodes = append(g.nodes, node{
		kind:             transformNode,
		parent:           parent,
		transform:        m,
		inverse:          inv,
		inverseTranspose: inv.Transpose(),
	})
	g.nodes[parent].children = append(g.nodes[parent].children, id)
	return id, nil
}

// AddShape inserts a shape node under parent and returns its id.
// A shape can belong to at most one graph position.
func (g *Group) AddShape(s *Shape, parent int) (int, error) {
	if s.graph != nil {
		return NoNode, fmt.Errorf("%w: node %d", ErrShapeAttached, s.id)
	}
	if err := g.checkParent(parent); err != nil {
		return NoNode, err
	}

	id := len(g.nodes)
	g.nodes = append(g.nodes, node{
		kind:   shapeNode,
		parent: parent,
		shape:  s,
	})
	g.nodes[parent].children = append(g.nodes[parent].children, id)

	s.graph = g
	s.id = id
	s.parent = parent
	return id, nil
}

func (g *Group) checkParent(parent int) error {
	if parent < 0 || parent >= len(g.nodes) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, parent)
	}
	if g.nodes[parent].kind != transformNode {
		return fmt.Errorf("%w: %d", ErrNotTransformNode, parent)
	}
	return nil
}

// Children returns the ids of the direct children of a node
func (g *Group) Children(id int) []int {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return append([]int(nil), g.nodes[id].children...)
}

// Parent returns the parent id of a node, or NoNode for the root
func (g *Group) Parent(id int) (int, error) {
	if id < 0 || id >= len(g.nodes) {
		return NoNode, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return g.nodes[id].parent, nil
}

// Shape returns the shape stored at id, if id is a shape node
func (g *Group) Shape(id int) (*Shape, bool) {
	if id < 0 || id >= len(g.nodes) || g.nodes[id].kind != shapeNode {
		return nil, false
	}
	return g.nodes[id].shape, true
}

// Shapes returns every shape in the graph in insertion order
func (g *Group) Shapes() []*Shape {
	var shapes []*Shape
	for _, n := range g.nodes {
		if n.kind == shapeNode {
			shapes = append(shapes, n.shape)
		}
	}
	return shapes
}

// Intersect intersects a ray, given in the space of node id, with every
// descendant of that node. The result is unsorted.
func (g *Group) Intersect(ray core.Ray, id int) []Intersection {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}

	var xs []Intersection
	for _, childID := range g.nodes[id].children {
		child := &g.nodes[childID]
		switch child.kind {
		case transformNode:
			xs = append(xs, g.Intersect(ray.Transform(child.inverse), childID)...)
		case shapeNode:
			xs = append(xs, child.shape.Intersect(ray)...)
		}
	}
	return xs
}

// worldToLocal converts a world point into the space of transform node id
func (g *Group) worldToLocal(id int, point core.Tuple) core.Tuple {
	n := &g.nodes[id]
	if n.parent != NoNode {
		point = g.worldToLocal(n.parent, point)
	}
	return n.inverse.MultiplyTuple(point)
}

// normalToWorld converts a normal in the space of transform node id back to
// world space, normalizing after each ancestor
func (g *Group) normalToWorld(id int, normal core.Tuple) core.Tuple {
	n := &g.nodes[id]
	normal = n.inverseTranspose.MultiplyTuple(normal).AsVector().Normalize()
	if n.parent != NoNode {
		normal = g.normalToWorld(n.parent, normal)
	}
	return normal
}
