package errors

import (
	"errors"
	"fmt"
)

// Common error types for the lab site
var (
	// ErrConfiguration marks a deployment defect (e.g. a missing secret).
	// It must never be reported to clients as an authentication failure.
	ErrConfiguration = errors.New("configuration error")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Input errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrCaptchaRejected = errors.New("captcha rejected")

	// Storage errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrStorage  = errors.New("storage error")

	// General errors
	ErrInternal = errors.New("internal error")
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

// New is errors.New, re-exported so callers need only this package
func New(text string) error {
	return errors.New(text)
}
