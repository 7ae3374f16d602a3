package types

import "errors"

var (
	// ErrInvalidInput marks requests rejected before any work is done.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks references to projects, nodes, edges or documents that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrModel wraps any language model failure. It never leaves the assistant.
	ErrModel = errors.New("model error")
)
