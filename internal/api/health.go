package api

import (
	"net/http"
	"time"

	"primesvc/internal/primes"
	"primesvc/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Build     version.BuildInfo `json:"build"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Checks    map[string]bool `json:"checks"`
}

// handleHealth responds to liveness checks
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	WriteJSON(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Build:     version.Info(),
	}, http.StatusOK)
}

// handleReady responds to readiness checks. The service has no backends,
// so it is ready as soon as the scanner answers a trivial range.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	checks := map[string]bool{
		"scanner": scannerReady(),
		"metrics": s.metrics != nil || !s.cfg.Metrics.Enabled,
	}

	status, code := "ready", http.StatusOK
	for _, ok := range checks {
		if !ok {
			status, code = "not_ready", http.StatusServiceUnavailable
			break
		}
	}

	WriteJSON(w, ReadyResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}, code)
}

func scannerReady() bool {
	return len(primes.Scan(1, 10)) == 5
}
