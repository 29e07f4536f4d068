// Package errors provides custom error types for the ciridae comparison engine.
// These errors enable programmatic error checking and better debugging
// throughout the reconciliation pipeline.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the comparison engine
var (
	// ErrMalformedInput indicates that a document failed validation before alignment
	ErrMalformedInput = errors.New("malformed input")

	// ErrOracleUnavailable indicates that an external pairing or scoring oracle failed
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")
)

// ValidationError represents a pre-alignment validation failure.
type ValidationError struct {
	Document string
	Field    string
	Message  string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("validation failed for %s document: %s: %s", e.Document, e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrMalformedInput || target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(document, field, message string) *ValidationError {
	return &ValidationError{Document: document, Field: field, Message: message}
}

// OracleError represents a failure in an external pairing or scoring oracle.
// The engine never retries; the underlying error propagates to the caller.
type OracleError struct {
	Oracle    string // "room-pairer" or "similarity-scorer"
	Operation string
	Err       error
}

// Error implements the error interface
func (e *OracleError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s oracle failed during %s: %v", e.Oracle, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s oracle failed: %v", e.Oracle, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *OracleError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *OracleError) Is(target error) bool {
	return target == ErrOracleUnavailable
}

// NewOracleError creates a new OracleError
func NewOracleError(oracle, operation string, err error) *OracleError {
	return &OracleError{Oracle: oracle, Operation: operation, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// IOError represents an error during I/O operations in the CLI layer
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsMalformedInput checks if an error is a pre-alignment validation error
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsOracleUnavailable checks if an error came from an external oracle
func IsOracleUnavailable(err error) bool {
	return errors.Is(err, ErrOracleUnavailable)
}

// Helper wrapping functions for common patterns

// WrapOracle wraps an error as an OracleError
func WrapOracle(oracle, operation string, err error) error {
	if err == nil {
		return nil
	}
	return NewOracleError(oracle, operation, err)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
