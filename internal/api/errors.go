package api

import (
	"encoding/json"
	"net/http"

	"primesvc/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	resp := ErrorResponse{
		Error: err.Error(),
		Code:  string(errors.CodeOf(err)),
	}
	if pe, ok := err.(*errors.PrimeError); ok {
		resp.Error = pe.Message
		resp.Details = pe.Details
	}

	WriteJSON(w, resp, status)
}

// WritePrimeError writes a PrimeError with automatic status code mapping
func WritePrimeError(w http.ResponseWriter, err *errors.PrimeError) {
	WriteError(w, err, MapErrorToStatus(err.Code))
}

// MapErrorToStatus maps error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.InvalidRequest:
		return http.StatusBadRequest // 400
	case errors.NotFound:
		return http.StatusNotFound // 404
	case errors.MethodNotAllowed:
		return http.StatusMethodNotAllowed // 405
	case errors.RangeTooLarge:
		return http.StatusRequestEntityTooLarge // 413
	case errors.Timeout:
		return http.StatusGatewayTimeout // 504
	case errors.EncodeFailed, errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string, cause error) {
	WritePrimeError(w, errors.New(errors.InvalidRequest, message, cause))
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WritePrimeError(w, errors.New(errors.NotFound, message, nil))
}

// MethodNotAllowed writes a 405 error advertising the allowed method
func MethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	WritePrimeError(w, errors.New(errors.MethodNotAllowed, "method not allowed, use "+allowed, nil))
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string, err error) {
	WritePrimeError(w, errors.New(errors.InternalError, message, err))
}
