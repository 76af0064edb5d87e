package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes returned by the HTTP API
type ErrorCode string

const (
	// InvalidRequest indicates a body that is not a valid range request
	InvalidRequest ErrorCode = "INVALID_REQUEST"
	// MethodNotAllowed indicates the route exists but not for this method
	MethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// NotFound indicates an unknown route
	NotFound ErrorCode = "NOT_FOUND"
	// RangeTooLarge indicates the range exceeds limits.maxRangeSpan
	RangeTooLarge ErrorCode = "RANGE_TOO_LARGE"
	// Timeout indicates the scan did not finish within limits.requestTimeout
	Timeout ErrorCode = "TIMEOUT"
	// EncodeFailed indicates the result could not be serialized
	EncodeFailed ErrorCode = "ENCODE_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// PrimeError represents an API error with a stable code and optional details
type PrimeError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new PrimeError
func New(code ErrorCode, message string, cause error) *PrimeError {
	return &PrimeError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *PrimeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PrimeError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *PrimeError) WithDetails(details interface{}) *PrimeError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first PrimeError in err's chain,
// or InternalError when there is none.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if pe, ok := err.(*PrimeError); ok {
			return pe.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return InternalError
}
