// Package errors defines stable error codes for the pipeline's failure
// modes. Only missing or unreadable input is fatal; every other input
// irregularity degrades into the Unknown/null/zero conventions documented on
// the field that carries it.
package errors

import "fmt"

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InputMissing indicates a required input collection could not be located
	InputMissing ErrorCode = "INPUT_MISSING"
	// InputMalformed indicates an input file could not be decoded
	InputMalformed ErrorCode = "INPUT_MALFORMED"
	// SnapshotUnavailable indicates the SQLite snapshot store has no data
	SnapshotUnavailable ErrorCode = "SNAPSHOT_UNAVAILABLE"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// WriteFailed indicates an artifact could not be written
	WriteFailed ErrorCode = "WRITE_FAILED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// PipelineError carries a stable code alongside the message and cause.
type PipelineError struct {
	Code    ErrorCode
	Message string
	cause   error
}

// New creates a PipelineError.
func New(code ErrorCode, message string, cause error) *PipelineError {
	return &PipelineError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.cause
}

// CodeOf returns the error's code, or InternalError for foreign errors.
func CodeOf(err error) ErrorCode {
	if pe, ok := err.(*PipelineError); ok {
		return pe.Code
	}
	return InternalError
}
