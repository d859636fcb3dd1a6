// Package errors provides structured error types for the engrave application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the layout engine, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The layout engine itself only ever fails fast on broken preconditions:
//   - RENDERING_CONTEXT_MISSING: a draw call ran without a bound drawing surface
//   - NO_ATTACHED_NOTE: a modifier was formatted or drawn before being attached
//   - NO_STAVE: a note was drawn, or annotated, without belonging to a stave
//   - UNKNOWN_KIND: a barline or justification value outside its closed set
//
// Everything else (INVALID_*, FILE_NOT_FOUND, INTERNAL_ERROR) belongs to the
// outer surfaces that load score documents and write artifacts.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownKind, "unknown barline kind %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownKind) {
//	    // Report bad input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScore, origErr, "failed to decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout engine preconditions
	ErrCodeRenderingContextMissing Code = "RENDERING_CONTEXT_MISSING"
	ErrCodeNoAttachedNote          Code = "NO_ATTACHED_NOTE"
	ErrCodeNoStave                 Code = "NO_STAVE"
	ErrCodeUnknownKind             Code = "UNKNOWN_KIND"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidScore  Code = "INVALID_SCORE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

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

// ContextMissing is shorthand for the error every draw call returns when
// its drawing surface was never bound.
func ContextMissing(what string) *Error {
	return New(ErrCodeRenderingContextMissing, "no rendering context attached to %s", what)
}

// NoAttachedNote is shorthand for a modifier used before it was attached.
func NoAttachedNote(what string) *Error {
	return New(ErrCodeNoAttachedNote, "no note attached to %s", what)
}

// UnknownKind reports a value outside a closed enumeration.
func UnknownKind(enum string, value any) *Error {
	return New(ErrCodeUnknownKind, "unknown %s: %v", enum, value)
}

// HTTPStatus maps an error to the status code the render server replies with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidScore,
		ErrCodeUnknownKind, ErrCodeNoAttachedNote, ErrCodeNoStave:
		return 400
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return 404
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
