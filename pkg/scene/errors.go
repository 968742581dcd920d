package scene

import "errors"

var (
	ErrUnknownScene     = errors.New("unknown scene")
	ErrInvalidSceneFile = errors.New("invalid scene file")
)
