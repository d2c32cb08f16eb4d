package store

import (
	"errors"
	"fmt"
)

// Store errors.
var (
	// ErrUnsupportedFormat indicates a file extension with no codec.
	ErrUnsupportedFormat = errors.New("unsupported history file format")

	// ErrUnsupportedVersion indicates a document written by a newer release.
	ErrUnsupportedVersion = errors.New("unsupported history file version")
)

// Error records a failed store operation on a file.
type Error struct {
	Op   string // "load", "save" or "create"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
