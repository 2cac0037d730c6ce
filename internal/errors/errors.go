package errors

import (
	"errors"
	"fmt"
)

// Common error types for the playground
var (
	// Storage errors
	ErrStorageNotConfigured = errors.New("storage is not configured")
	ErrUnknownBackend       = errors.New("unknown storage backend")
	ErrEmptyKey             = errors.New("storage key is required")

	// Error tracker errors
	ErrUnknownErrorKind = errors.New("unknown error kind")

	// Collector errors
	ErrCollectorRejected     = errors.New("collector rejected event")
	ErrCollectorNotAvailable = errors.New("collector not configured")

	// Session errors
	ErrAlreadyIdentified = errors.New("already identified")
	ErrSessionNotFound   = errors.New("session not found")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
