// Package errors provides structured error types for the BOM engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine packages and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map directly to the engine's error taxonomy:
//   - STRUCTURAL_CYCLE: fatal to a build or attach, never auto-resolved
//   - ORPHAN_REFERENCE: degraded gracefully (orphan becomes a root)
//   - TRAVERSAL_BUDGET_EXCEEDED: fail-safe denial on pathological graphs
//   - VERSION_CONFLICT: optimistic-concurrency mismatch, caller retries
//   - INVALID_FIELD: out-of-range field rejected at the boundary
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidField, "scrap rate %s out of range", rate)
//	if errors.Is(err, errors.ErrCodeInvalidField) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStructuralCycle, cause, "building BOM %s", bomID)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Engine taxonomy
	ErrCodeStructuralCycle Code = "STRUCTURAL_CYCLE"
	ErrCodeOrphanReference Code = "ORPHAN_REFERENCE"
	ErrCodeBudgetExceeded  Code = "TRAVERSAL_BUDGET_EXCEEDED"
	ErrCodeVersionConflict Code = "VERSION_CONFLICT"
	ErrCodeInvalidField    Code = "INVALID_FIELD"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodeBOMNotFound  Code = "BOM_NOT_FOUND"

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
