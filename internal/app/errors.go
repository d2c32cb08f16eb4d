package app

import (
	"errors"
	"fmt"

	"github.com/dshills/selnav/internal/keymap"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoObject indicates a command needed an object under the list cursor.
	ErrNoObject = errors.New("no object under cursor")

	// ErrUnknownCommand indicates a binding names a command the host lacks.
	ErrUnknownCommand = keymap.ErrUnknownCommand
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
