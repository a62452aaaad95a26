package core

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidAttribute  = errors.New("invalid attribute")
	ErrMalformedDocument = errors.New("malformed scene document")
	ErrDuplicate         = errors.New("duplicate entry")
	ErrCycle             = errors.New("hierarchy cycle")
	ErrUnresolved        = errors.New("unresolved reference")
	ErrInvalidMesh       = errors.New("invalid mesh")
	ErrUnknown           = errors.New("unknown")
)
