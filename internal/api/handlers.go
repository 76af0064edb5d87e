package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"primesvc/internal/errors"
	"primesvc/internal/primes"
	"primesvc/internal/tracing"
)

// maxBodyBytes caps the request body; a range request is two integers.
const maxBodyBytes = 1 << 16

// encodeFallbackBody is written with 200 OK when the prime list cannot be
// encoded and server.fallbackOnEncodeError is set.
const encodeFallbackBody = "Failed to extract data"

// RangeRequest is the body of POST /primes. Both bounds are inclusive.
type RangeRequest struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// rangeRequestBody distinguishes absent fields from zero.
type rangeRequestBody struct {
	Start *uint32 `json:"start"`
	End   *uint32 `json:"end"`
}

// decodeRangeRequest parses and validates a POST /primes body. The body must
// hold exactly one JSON object.
func decodeRangeRequest(r *http.Request) (RangeRequest, error) {
	var body rangeRequestBody
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		return RangeRequest{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return RangeRequest{}, stderrors.New("unexpected data after request object")
	}
	if body.Start == nil {
		return RangeRequest{}, fmt.Errorf("missing field %q", "start")
	}
	if body.End == nil {
		return RangeRequest{}, fmt.Errorf("missing field %q", "end")
	}
	return RangeRequest{Start: *body.Start, End: *body.End}, nil
}

// isJSONContentType accepts application/json and application/*+json.
func isJSONContentType(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// handlePrimes handles POST /primes
func (s *Server) handlePrimes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w, http.MethodPost)
		return
	}

	if s.cfg.Server.RequireJSONContentType && !isJSONContentType(r.Header.Get("Content-Type")) {
		BadRequest(w, "Content-Type must be application/json", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := decodeRangeRequest(r)
	if err != nil {
		BadRequest(w, "invalid range request", err)
		return
	}

	span := primes.Span(req.Start, req.End)
	if limit := s.cfg.Limits.MaxRangeSpan; limit > 0 && span > limit {
		WritePrimeError(w, errors.New(errors.RangeTooLarge,
			fmt.Sprintf("range covers %d values, limit is %d", span, limit), nil).
			WithDetails(map[string]uint64{"span": span, "maxRangeSpan": limit}))
		return
	}

	ctx := r.Context()
	if ms := s.cfg.Limits.RequestTimeoutMs; ms > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
		defer cancel()
	}

	started := time.Now()
	ctx, traceSpan := tracing.StartScan(ctx, req.Start, req.End)
	result, err := primes.ScanContext(ctx, req.Start, req.End)
	tracing.EndScan(traceSpan, len(result), err)
	if s.metrics != nil {
		s.metrics.RecordScan(span, len(result), time.Since(started), err)
	}

	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			WritePrimeError(w, errors.New(errors.Timeout, "scan did not finish in time", err))
			return
		}
		// The client went away; nobody is left to read a response.
		s.logger.Debug("Scan abandoned",
			"start", req.Start,
			"end", req.End,
			"requestID", GetRequestID(r.Context()),
		)
		return
	}

	s.logger.Debug("Scan finished",
		"start", req.Start,
		"end", req.End,
		"count", len(result),
		"duration", time.Since(started),
		"requestID", GetRequestID(r.Context()),
	)

	s.writePrimes(w, r, result)
}

// writePrimes encodes result as a compact JSON array.
func (s *Server) writePrimes(w http.ResponseWriter, r *http.Request, result []uint32) {
	data, err := s.marshal(result)
	if err != nil {
		s.logger.Error("Failed to encode primes",
			"error", err.Error(),
			"count", len(result),
			"requestID", GetRequestID(r.Context()),
		)
		if s.cfg.Server.FallbackOnEncodeError {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(encodeFallbackBody))
			return
		}
		WritePrimeError(w, errors.New(errors.EncodeFailed, "failed to encode result", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
