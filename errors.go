// Package gpumark structured error types for harness failure handling
package gpumark

import (
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Memory errors
	ErrTypeMemory ErrorType = iota
	// Invalid argument errors
	ErrTypeInvalidArg
	// Kernel compilation errors (fatal for the whole run)
	ErrTypeCompile
	// Kernel launch errors (fatal for the whole run)
	ErrTypeLaunch
	// Validation errors (exact-equality mismatch, fatal)
	ErrTypeValidation
)

// MarkError represents a structured error with context
type MarkError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *MarkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gpumark %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("gpumark %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *MarkError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeCompile:
		return "Compile"
	case ErrTypeLaunch:
		return "Launch"
	case ErrTypeValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewMemoryError creates a memory-related error
func NewMemoryError(op string, message string, err error) error {
	return &MarkError{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &MarkError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewCompileError creates a kernel compilation error
func NewCompileError(op string, message string, err error) error {
	return &MarkError{
		Type:    ErrTypeCompile,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewLaunchError creates a kernel launch error
func NewLaunchError(op string, message string, err error) error {
	return &MarkError{
		Type:    ErrTypeLaunch,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates an exact-equality validation error
func NewValidationError(op string, message string) error {
	return &MarkError{
		Type:    ErrTypeValidation,
		Op:      op,
		Message: message,
	}
}

// Common pre-defined errors

var (
	// ErrInvalidSize indicates an invalid allocation size
	ErrInvalidSize = NewInvalidArgError("Malloc", "size must be positive")

	// ErrDoubleFree indicates a double free attempt
	ErrDoubleFree = NewMemoryError("Free", "double free detected", nil)
)

// IsFatal reports whether an error must abort the benchmarking pass.
// Compile and launch faults mean no further measurement can be trusted;
// an exact-equality validation mismatch means the device lies.
func IsFatal(err error) bool {
	if e, ok := err.(*MarkError); ok {
		switch e.Type {
		case ErrTypeCompile, ErrTypeLaunch, ErrTypeValidation:
			return true
		}
	}
	return false
}

// IsMemoryError checks if an error is a memory error
func IsMemoryError(err error) bool {
	if e, ok := err.(*MarkError); ok {
		return e.Type == ErrTypeMemory
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if e, ok := err.(*MarkError); ok {
		return e.Type == ErrTypeValidation
	}
	return false
}
