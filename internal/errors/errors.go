// Package errors defines stable error codes for all detector failure modes.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnsupportedLanguage indicates no language profile matched the hint.
	// Never fatal: analysis falls back to the generic profile with degraded confidence.
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ParseFailure indicates structural parsing failed for a supported language.
	// Never fatal: analysis falls back to the lexical view with degraded confidence.
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// EmptyInput indicates the source text was empty or whitespace-only.
	// Produces a zero-score result rather than an error.
	EmptyInput ErrorCode = "EMPTY_INPUT"
	// OversizedInput indicates the input exceeded the configured size limit.
	// Enforced by the calling layer, not the detection core.
	OversizedInput ErrorCode = "OVERSIZED_INPUT"
	// InvalidRequest indicates a structurally invalid call, such as a request
	// with no source text field at all
	InvalidRequest ErrorCode = "INVALID_REQUEST"
	// StorageFailure indicates the result store or cache failed
	StorageFailure ErrorCode = "STORAGE_FAILURE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// DetectError represents an aidetect error with a stable code and message
type DetectError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new DetectError
func New(code ErrorCode, message string, cause error) *DetectError {
	return &DetectError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *DetectError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DetectError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *DetectError) WithDetails(details interface{}) *DetectError {
	e.Details = details
	return e
}
