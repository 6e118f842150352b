package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSection  = errors.New("unknown section")
	ErrNoSurface       = errors.New("drawing surface is nil")
)
