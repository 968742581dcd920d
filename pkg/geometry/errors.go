package geometry

import "errors"

var (
	ErrUnknownNode      = errors.New("unknown scene-graph node")
	ErrNotTransformNode = errors.New("scene-graph parent is not a transform node")
	ErrShapeAttached    = errors.New("shape already belongs to a scene graph")
)
