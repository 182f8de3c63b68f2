package domain

import (
	"errors"
	"fmt"
)

// Sentinel domain errors. Everything recoverable inside the query core
// (missing columns, degenerate option orders, malformed numerics) is
// handled locally and never surfaces as one of these; only lookup misses
// and caller mistakes do.
var (
	// ErrNotFound signals a lookup miss (unknown procedure ID).
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput signals a malformed request from the caller.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal signals an unexpected internal failure.
	ErrInternal = errors.New("internal error")
)

// DomainError carries an error code and a user-facing message alongside the
// wrapped sentinel.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface (for logs and internal propagation).
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserMessage returns the user-facing message without internal detail.
func (e *DomainError) UserMessage() string {
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a lookup-miss error.
func NewNotFoundError(resourceType, name string) error {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s '%s' not found", resourceType, name),
		Err:     ErrNotFound,
	}
}

// NewInvalidInputError creates a malformed-request error.
func NewInvalidInputError(message string) error {
	return &DomainError{
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewInternalError wraps an unexpected failure without exposing detail.
func NewInternalError(err error) error {
	return &DomainError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Err:     fmt.Errorf("%w: %v", ErrInternal, err),
	}
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is a malformed request.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInternalError reports whether err is an internal failure.
func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}
