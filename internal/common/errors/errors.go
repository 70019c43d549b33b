// Package errors provides the classified error type every resource loader
// surfaces through its Failed state.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Load failure codes. Each one is terminal for the loader that produced it.
const (
	ErrCodeRequestConstructionFailed ErrorCode = "REQUEST_CONSTRUCTION_FAILED"
	ErrCodeTransportFailed           ErrorCode = "TRANSPORT_FAILED"
	ErrCodeHTTPStatus                ErrorCode = "HTTP_STATUS_ERROR"
	ErrCodeEmptyBody                 ErrorCode = "EMPTY_BODY"
	ErrCodeDecodeFailed              ErrorCode = "DECODE_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// LoadError represents a structured load failure.
type LoadError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"statusCode,omitempty"`
	Retryable  bool      `json:"retryable"`
	Timestamp  time.Time `json:"timestamp"`

	cause error
}

func (e *LoadError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("LoadError[%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("LoadError[%s]: %s: %s", e.Code, e.Message, e.Details)
}

// Unwrap exposes the underlying transport or decode error, if any.
func (e *LoadError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewRequestConstructionError reports a request target that could not be built.
func NewRequestConstructionError(err error) *LoadError {
	return &LoadError{
		Code:      ErrCodeRequestConstructionFailed,
		Message:   "Request target could not be constructed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewTransportError reports a network-level failure where no response arrived.
func NewTransportError(err error) *LoadError {
	return &LoadError{
		Code:      ErrCodeTransportFailed,
		Message:   "Transport failure",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewHTTPStatusError reports a response with status >= 400.
// Server errors are marked retryable; client errors are not.
func NewHTTPStatusError(statusCode int) *LoadError {
	return &LoadError{
		Code:       ErrCodeHTTPStatus,
		Message:    "Server returned an error status",
		Details:    fmt.Sprintf("status %d", statusCode),
		StatusCode: statusCode,
		Retryable:  statusCode >= 500,
		Timestamp:  time.Now().UTC(),
	}
}

// NewEmptyBodyError reports a successful status with no usable body.
func NewEmptyBodyError(statusCode int) *LoadError {
	return &LoadError{
		Code:       ErrCodeEmptyBody,
		Message:    "No data was returned",
		Details:    fmt.Sprintf("status %d with empty body", statusCode),
		StatusCode: statusCode,
		Retryable:  false,
		Timestamp:  time.Now().UTC(),
	}
}

// NewDecodeError reports a body that does not match the expected shape.
func NewDecodeError(err error) *LoadError {
	return &LoadError{
		Code:      ErrCodeDecodeFailed,
		Message:   "Response could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a LoadError.
func Normalize(err error) *LoadError {
	if err == nil {
		return nil
	}
	var le *LoadError
	if stderrors.As(err, &le) {
		return le
	}
	return &LoadError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HasCode reports whether err is a LoadError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var le *LoadError
	if stderrors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// IsRetryable reports whether a fresh loader for the same request may succeed.
func IsRetryable(err error) bool {
	var le *LoadError
	if stderrors.As(err, &le) {
		return le.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "REQUEST"):
		return "REQUEST"
	case strings.Contains(codeStr, "TRANSPORT"):
		return "NETWORK"
	case strings.Contains(codeStr, "HTTP"):
		return "SERVER"
	case strings.Contains(codeStr, "BODY") || strings.Contains(codeStr, "DECODE"):
		return "PAYLOAD"
	default:
		return "UNKNOWN"
	}
}
