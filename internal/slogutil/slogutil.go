package slogutil

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"primesvc/internal/config"
)

// silent is above every standard level.
const silent = slog.Level(100)

// NewLogger creates a logger that writes the TextHandler format to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewDiscardLogger creates a logger that discards all output.
func NewDiscardLogger() *slog.Logger {
	return slog.New(NewTextHandler(io.Discard, &slog.HandlerOptions{Level: silent}))
}

// LevelFromString converts debug, info, warn or error (any case) to a
// slog.Level. Unknown strings map to info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the service logger from cfg. Console output goes to w in the
// configured format; when cfg.File is set, records are also appended to that
// file with size-based rotation. The returned closer is never nil.
func New(w io.Writer, cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	level := LevelFromString(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var console slog.Handler
	if cfg.Format == "json" {
		console = slog.NewJSONHandler(w, opts)
	} else {
		console = NewTextHandler(w, opts)
	}

	if cfg.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	rf, err := OpenRotatingFile(cfg.File, ParseSize(cfg.MaxSize), cfg.MaxBackups)
	if err != nil {
		return nil, nil, err
	}
	file := NewTextHandler(rf, opts)
	return slog.New(NewTeeHandler(console, file)), rf, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// TeeHandler writes logs to multiple handlers.
type TeeHandler struct {
	handlers []slog.Handler
}

// NewTeeHandler creates a handler that writes to all provided handlers.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

// Enabled returns true if any handler is enabled for the level.
func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle writes the record to all handlers and returns the first error.
func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: next}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: next}
}
