package log

import (
	"io"
	"log/slog"
)

// NewLogger creates a structured logger writing to w.
// When verbose is true the level drops to debug so collector and pipeline
// internals become visible; the default level is warn so normal runs only
// surface problems.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
