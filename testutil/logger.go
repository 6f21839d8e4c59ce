package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a JSON logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
