package api

import (
	"net/http"

	"primesvc/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/primes", s.handlePrimes)

	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)

	if s.metrics != nil {
		s.router.Handle(s.cfg.Metrics.Endpoint, s.metrics.Handler())
	}

	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFound(w, "no route for "+r.URL.Path)
		return
	}

	if r.Method != http.MethodGet {
		MethodNotAllowed(w, http.MethodGet)
		return
	}

	endpoints := []string{
		"POST /primes - Primes in an inclusive range, body {\"start\":N,\"end\":M}",
		"GET /health - Health check",
		"GET /ready - Readiness check",
	}
	if s.metrics != nil {
		endpoints = append(endpoints, "GET "+s.cfg.Metrics.Endpoint+" - Prometheus metrics")
	}

	WriteJSON(w, map[string]interface{}{
		"name":      "primesvc",
		"version":   version.Info().Short(),
		"endpoints": endpoints,
	}, http.StatusOK)
}
