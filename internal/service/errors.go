package service

import (
	"errors"
	"fmt"
	"io/fs"

	"gh-notes/internal/vault"
)

var (
	// ErrInvalidInput is returned when a request path or query is malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when no document exists at the requested location.
	ErrNotFound = errors.New("not found")
	// ErrIsDirectory is returned when the requested location is a folder.
	ErrIsDirectory = errors.New("location is a directory")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// noteError maps errors from resolving or reading a note onto the sentinels
// above. Paths rejected by the vault become ErrInvalidInput and files that have
// vanished since the crawl become ErrNotFound. Anything else is wrapped with op.
func noteError(err error, location, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, vault.ErrInvalidPath):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, fs.ErrNotExist):
		return WrapError(ErrNotFound, location)
	default:
		return WrapError(err, op)
	}
}
