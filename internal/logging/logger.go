// Package logging builds the service logger: human-readable output on stdout
// plus, when configured, an append-only JSON request log on a size-rotated
// file. The file is write-only operational telemetry; nothing reads it back.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// New returns the process logger. path is the optional log file; maxMB bounds
// the file size before rotation.
func New(development bool, path string, maxMB int) (*slog.Logger, error) {
	level := slog.LevelInfo
	if development {
		level = slog.LevelDebug
	}

	stdout := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if path == "" {
		return slog.New(stdout), nil
	}

	w, err := NewRotatingWriter(path, int64(maxMB)<<20)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	file := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(newMultiHandler(stdout, file)), nil
}

// multiHandler forwards log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) slog.Handler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, rec.Level) {
			if err := handler.Handle(ctx, rec.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return newMultiHandler(handlers...)
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return newMultiHandler(handlers...)
}
