// ABOUTME: Error types for the suggest library
// ABOUTME: Library errors carry a type so callers can branch without importing core packages

package suggest

import (
	"errors"
	"fmt"

	coreerrors "catalog-suggest/core/errors"
)

// ErrorType classifies library errors
type ErrorType string

const (
	// ErrorTypeConfiguration indicates an invalid option
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeParsing indicates a malformed catalog or correction table
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeEngine indicates the search engine rejected an operation
	ErrorTypeEngine ErrorType = "engine"

	// ErrorTypeClosed indicates the client was used after Close
	ErrorTypeClosed ErrorType = "closed"
)

// Error is a structured library error
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrClosed is returned by every operation after Close.
var ErrClosed = &Error{Type: ErrorTypeClosed, Message: "client is closed"}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// classify picks the error type for a failure coming out of the core.
func classify(message string, err error) error {
	switch {
	case coreerrors.IsParse(err):
		return newError(ErrorTypeParsing, message, err)
	case coreerrors.IsValidation(err):
		return newError(ErrorTypeConfiguration, message, err)
	default:
		return newError(ErrorTypeEngine, message, err)
	}
}

// IsType reports whether err is a library error of type t.
func IsType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}
