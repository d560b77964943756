package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Format follows LOG_FORMAT; every line
// carries a service attribute so the API and the worker can share one log sink.
func NewLogger(cfg *Config, service string) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("service", service))
}
