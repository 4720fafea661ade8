package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable marks failures of the search or generation backends.
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidInput       = errors.New("invalid input")
)

// Unavailable wraps a backend failure so callers can classify it with errors.Is.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, op, err)
}
