// Package exec provides the run-scoped execution context for one interpreted
// exercise run: the virtual clock, the logic-error channel, frame and log
// capture, and the classified error type shared by the rest of the bridge.
package exec

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of an error raised during a run.
type ErrorClass string

const (
	// ErrorClassLogic indicates a student-facing error raised by host
	// validation code inside a class method or exercise function.
	// Logic errors never unwind past the call that raised them.
	ErrorClassLogic ErrorClass = "logic"

	// ErrorClassValidation indicates a logic error raised specifically
	// because an argument's runtime variant did not match what the
	// class or function declares.
	ErrorClassValidation ErrorClass = "validation"

	// ErrorClassSyntax indicates the script failed to parse. Carries a
	// source line and column from the static pre-parse.
	ErrorClassSyntax ErrorClass = "syntax"

	// ErrorClassRuntime indicates an uncaught error from dynamic
	// evaluation of the script.
	ErrorClassRuntime ErrorClass = "runtime"
)

// RunError represents a classified error with source context.
type RunError struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable, student-facing error message.
	Message string `json:"message"`

	// Line is the 1-based source line, or 0 when unknown.
	Line int `json:"line,omitempty"`

	// Column is the 1-based source column, or 0 when unknown.
	Column int `json:"column,omitempty"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %s (line %d, column %d)", e.Class, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("[%s] %s", e.Class, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *RunError) Unwrap() error {
	return e.Err
}

// Is implements error equality checking for errors.Is.
func (e *RunError) Is(target error) bool {
	t, ok := target.(*RunError)
	if !ok {
		return false
	}
	return e.Class == t.Class && (t.Message == "" || e.Message == t.Message)
}

// NewLogicError creates a new logic-classified error.
func NewLogicError(message string) *RunError {
	return &RunError{Class: ErrorClassLogic, Message: message}
}

// NewValidationError creates a new validation-classified error.
func NewValidationError(message string) *RunError {
	return &RunError{Class: ErrorClassValidation, Message: message}
}

// NewSyntaxError creates a new syntax-classified error.
func NewSyntaxError(message string, err error) *RunError {
	return &RunError{Class: ErrorClassSyntax, Message: message, Err: err}
}

// NewRuntimeError creates a new runtime-classified error.
func NewRuntimeError(message string, err error) *RunError {
	return &RunError{Class: ErrorClassRuntime, Message: message, Err: err}
}

// WithPosition adds source position context to an error.
func (e *RunError) WithPosition(line, column int) *RunError {
	e.Line = line
	e.Column = column
	return e
}

// IsLogic returns true if the error is classified as a logic or
// validation error.
func IsLogic(err error) bool {
	var e *RunError
	if errors.As(err, &e) {
		return e.Class == ErrorClassLogic || e.Class == ErrorClassValidation
	}
	return false
}

// IsSyntax returns true if the error is classified as a syntax error.
func IsSyntax(err error) bool {
	var e *RunError
	if errors.As(err, &e) {
		return e.Class == ErrorClassSyntax
	}
	return false
}

// IsRuntime returns true if the error is classified as a runtime error.
func IsRuntime(err error) bool {
	var e *RunError
	if errors.As(err, &e) {
		return e.Class == ErrorClassRuntime
	}
	return false
}
