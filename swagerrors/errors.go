// Package swagerrors provides structured error types for swagfix.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between the three failure
// categories of a migration run:
//
//   - IOError: the input path could not be read or the output path could
//     not be written
//   - ParseError: the input content is not valid YAML/JSON
//   - TypeMismatchError: a document key holds a value of the wrong type,
//     making the structural migration impossible
package swagerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrIO indicates a file read or write failure.
	ErrIO = errors.New("io error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrTypeMismatch indicates a document value has an unexpected type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// IOError represents a failure to read the input file or write the output
// file. The run aborts; no partial output is left behind.
type IOError struct {
	// Path is the file path that could not be accessed
	Path string
	// Op is the failed operation: "read" or "write"
	Op string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *IOError) Error() string {
	msg := "io error"
	if e.Op != "" {
		msg += " during " + e.Op
	}
	if e.Path != "" {
		msg += " of " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// ParseError represents a failure to parse a document.
// This includes YAML/JSON deserialization errors.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// TypeMismatchError represents a document value with a type that makes the
// requested migration impossible, such as a top-level "components" key that
// is not a mapping.
type TypeMismatchError struct {
	// Path is the dotted path to the problematic value (e.g., "components")
	Path string
	// Expected is the expected kind (e.g., "mapping")
	Expected string
	// Actual is the problematic value (may be nil)
	Actual any
}

// Error returns a human-readable error message.
func (e *TypeMismatchError) Error() string {
	msg := "type mismatch"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Expected != "" {
		msg += ": expected " + e.Expected
	}
	if e.Actual != nil {
		msg += fmt.Sprintf(", got %T", e.Actual)
	}
	return msg
}

// Unwrap returns nil as TypeMismatchError has no underlying cause.
func (e *TypeMismatchError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
