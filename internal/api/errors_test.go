package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perrors "primesvc/internal/errors"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		code perrors.ErrorCode
		want int
	}{
		{perrors.InvalidRequest, http.StatusBadRequest},
		{perrors.NotFound, http.StatusNotFound},
		{perrors.MethodNotAllowed, http.StatusMethodNotAllowed},
		{perrors.RangeTooLarge, http.StatusRequestEntityTooLarge},
		{perrors.Timeout, http.StatusGatewayTimeout},
		{perrors.EncodeFailed, http.StatusInternalServerError},
		{perrors.InternalError, http.StatusInternalServerError},
		{perrors.ErrorCode("SOMETHING_NEW"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := MapErrorToStatus(tt.code); got != tt.want {
				t.Errorf("MapErrorToStatus(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestWriteError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("boom"), http.StatusInternalServerError)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Code != "INTERNAL_ERROR" {
		t.Errorf("Code = %q, want INTERNAL_ERROR", resp.Code)
	}
	if resp.Error != "boom" {
		t.Errorf("Error = %q, want boom", resp.Error)
	}
}

func TestWritePrimeError(t *testing.T) {
	w := httptest.NewRecorder()
	WritePrimeError(w, perrors.New(perrors.InvalidRequest, "invalid range request", errors.New("EOF")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	resp := decodeError(t, w)
	if resp.Code != "INVALID_REQUEST" || resp.Error != "invalid range request" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
