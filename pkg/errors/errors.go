// Package errors provides structured error types for the septex library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - LIFECYCLE_*: Resource lifecycle violations (writing to a closed
//     document, reopening a used environment, ...)
//   - INVALID_*: Input validation failures (colors, styles, coordinates)
//   - COMPILE_*: External TeX engine failures
//   - FILE_*: Filesystem conflicts
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidColor, "channel out of range: %d", v)
//	if errors.Is(err, errors.ErrCodeInvalidColor) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileWrite, origErr, "writing %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Lifecycle violations. These are structural errors: they are fatal to
	// the current scope and never retried.
	ErrCodeNotOpen    Code = "LIFECYCLE_NOT_OPEN"
	ErrCodeNotClosed  Code = "LIFECYCLE_NOT_CLOSED"
	ErrCodeNotVirgin  Code = "LIFECYCLE_NOT_VIRGIN"
	ErrCodeNotUsed    Code = "LIFECYCLE_NOT_USED"
	ErrCodeReopened   Code = "LIFECYCLE_REOPENED"
	ErrCodeOpenChild  Code = "LIFECYCLE_OPEN_CHILD"
	ErrCodeBadParent  Code = "LIFECYCLE_BAD_PARENT"

	// Value errors
	ErrCodeDuplicateName   Code = "DUPLICATE_NAME"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidPoint    Code = "INVALID_POINT"
	ErrCodeInvalidNode     Code = "INVALID_NODE"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"

	// External compiler errors. These are recoverable by the caller: the
	// markup may still have been generated successfully.
	ErrCodeCompileFailed  Code = "COMPILE_FAILED"
	ErrCodeCompileTimeout Code = "COMPILE_TIMEOUT"

	// Filesystem errors
	ErrCodeFileExists Code = "FILE_EXISTS"
	ErrCodeFileWrite  Code = "FILE_WRITE"

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

// IsLifecycle reports whether err is any of the lifecycle violation codes.
func IsLifecycle(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case ErrCodeNotOpen, ErrCodeNotClosed, ErrCodeNotVirgin, ErrCodeNotUsed,
		ErrCodeReopened, ErrCodeOpenChild, ErrCodeBadParent:
		return true
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
