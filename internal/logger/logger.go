package logger

import (
	"log/slog"
	"os"
)

// Load builds the process-wide logger. LOG_LEVEL=debug turns on the verbose
// session-store diagnostics.
func Load() *slog.Logger {
	opts := &slog.HandlerOptions{}
	if os.Getenv("LOG_LEVEL") == "debug" {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
