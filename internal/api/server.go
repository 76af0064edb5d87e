package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"primesvc/internal/config"
)

// Server represents the HTTP API server
type Server struct {
	router  *http.ServeMux
	server  *http.Server
	cfg     *config.Config
	logger  *slog.Logger
	metrics *Metrics

	// marshal encodes a prime list; swapped in tests to force encode failures.
	marshal func(v interface{}) ([]byte, error)
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		router:  http.NewServeMux(),
		marshal: json.Marshal,
	}
	if cfg.Metrics.Enabled {
		s.metrics = NewMetrics()
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.applyMiddleware(s.router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutMs) * time.Millisecond,
	}

	return s
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info(fmt.Sprintf("Starting Server on Port: %d", listenerPort(ln, s.cfg.Server.Port)),
		"addr", ln.Addr().String(),
	)

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully")
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler, outermost last.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	if s.cfg.Server.Compression {
		handler = CompressionMiddleware()(handler)
	}
	handler = RecoveryMiddleware(s.logger)(handler)
	if s.metrics != nil {
		handler = MetricsMiddleware(s.metrics, "/", "/primes", "/health", "/ready", s.cfg.Metrics.Endpoint)(handler)
	}
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	return handler
}

// writeTimeoutMargin is the time left to write a 504 after the scan budget runs out.
const writeTimeoutMargin = time.Second

// writeTimeout returns the connection write deadline. A configured deadline
// shorter than the scan budget would drop the 504, so it is stretched past it.
func writeTimeout(cfg *config.Config) time.Duration {
	write := time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond
	if write <= 0 {
		return 0
	}
	if budget := time.Duration(cfg.Limits.RequestTimeoutMs) * time.Millisecond; budget > 0 && write < budget+writeTimeoutMargin {
		return budget + writeTimeoutMargin
	}
	return write
}

// listenerPort reports the bound port, which differs from the configured one for port 0.
func listenerPort(ln net.Listener, fallback int) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return fallback
}
