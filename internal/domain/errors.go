package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSpec indicates a parse, schema or cross-reference violation.
	ErrSpec = errors.New("specification error")

	// ErrUsage indicates a bad invocation.
	ErrUsage = errors.New("usage error")
)

// SpecError is the error type reported for every problem found while
// compiling option specifications or producing artifacts from them.
type SpecError struct {
	Phase      string // "config", "scan", "parse", "schema", "resolve", "template", "write"
	File       string
	LineNumber int
	Message    string
	Cause      error
}

func (e *SpecError) Error() string {
	var s string
	if e.File != "" {
		s = e.File
		if e.LineNumber > 0 {
			s += fmt.Sprintf(":%d", e.LineNumber)
		}
		s += ": "
	}
	s += e.Message
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SpecError) Is(target error) bool {
	return target == ErrSpec
}

// NewError creates a new SpecError.
func NewError(phase, file string, line int, message string, cause error) *SpecError {
	return &SpecError{
		Phase:      phase,
		File:       file,
		LineNumber: line,
		Message:    message,
		Cause:      cause,
	}
}

// Errorf creates a SpecError without a cause and a formatted message.
func Errorf(phase string, pos Position, format string, args ...any) *SpecError {
	return NewError(phase, pos.File, pos.Line, fmt.Sprintf(format, args...), nil)
}

// UsageError reports an invocation problem. No processing is performed when
// one is returned.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Is reports whether target matches this error type.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// NewUsageError creates a UsageError with a formatted message.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}
