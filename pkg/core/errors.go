package core

import "errors"

var (
	// ErrSingularMatrix is returned when a transform has no inverse
	ErrSingularMatrix = errors.New("matrix is not invertible")
)
