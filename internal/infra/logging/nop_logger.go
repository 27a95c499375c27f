package logging

import (
	"io"
	"log/slog"
)

// NewNopLogger creates a logger that discards all output.
// Used when the configured output is "discard" and in tests that do not
// inspect log lines.
func NewNopLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
