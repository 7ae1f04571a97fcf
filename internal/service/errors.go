package service

import "errors"

var (
	// ErrValidation covers every request rejected before touching the store.
	ErrValidation = errors.New("invalid request")
	// ErrUnsupported is a method/path combination the resource does not serve.
	ErrUnsupported = errors.New("unsupported operation")
)
