package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. Trace/span ids are added
// per record by TraceHandler when tracing is enabled.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
