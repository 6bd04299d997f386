package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger. Text output for local development,
// JSON when LOG_FORMAT=json (the shape log shippers expect).
func New() *slog.Logger {
	var handler slog.Handler
	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}
