package common

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// SetupLogger configures the global logger. Console output goes to stderr in
// the requested format; when logFile is non-empty, a text handler additionally
// appends every record at info level and above to that file, which serves as
// the durable session log.
func SetupLogger(level slog.Level, format, logFile string) (*os.File, error) {
	opts := &slog.HandlerOptions{Level: level}

	var console slog.Handler
	switch format {
	case "json":
		console = slog.NewJSONHandler(os.Stderr, opts)
	default:
		console = slog.NewTextHandler(os.Stderr, opts)
	}

	handler := console
	var f *os.File
	if logFile != "" {
		var err error
		f, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})
		handler = newFanoutHandler(console, fileHandler)
	}

	slog.SetDefault(slog.New(handler))
	return f, nil
}

// fanoutHandler duplicates records across multiple handlers.
type fanoutHandler struct {
	handlers []slog.Handler
}

func newFanoutHandler(handlers ...slog.Handler) *fanoutHandler {
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, record.Level) {
			continue
		}
		if err := hh.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}
