package renderer

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidCanvas     = errors.New("canvas must have a positive size")
)
