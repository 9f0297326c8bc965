// Package errors provides structured error types for tagcloud.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration and input validation failures
//   - *_FAILED: Run-level failures (placement, buffer allocation)
//   - NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Cancellation is not an error in this taxonomy. Callers observe it as a
// partial or empty result.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSpacing, "spacing must be positive, got %v", sp)
//	if errors.Is(err, errors.ErrCodeInvalidSpacing) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFont, origErr, "parse font %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input and configuration errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidFont    Code = "INVALID_FONT"
	ErrCodeInvalidSpacing Code = "INVALID_SPACING"
	ErrCodeInvalidColor   Code = "INVALID_COLOR"
	ErrCodeInvalidSize    Code = "INVALID_SIZE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Run failures
	ErrCodePlacementFailed  Code = "PLACEMENT_FAILED"
	ErrCodeAllocationFailed Code = "ALLOCATION_FAILED"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
func IsInvalid(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
