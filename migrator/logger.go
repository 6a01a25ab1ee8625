package migrator

import (
	"context"
	"log/slog"
)

// Logger is the interface that the migrator uses for structured logging.
//
// It is a minimal subset compatible with popular logging libraries, using
// variadic key-value pairs for attributes in the same convention as
// log/slog. Use [NewSlogAdapter] to wrap a standard library slog.Logger:
//
//	logger := migrator.NewSlogAdapter(slog.Default())
//	result, err := migrator.MigrateWithOptions(
//	    migrator.WithFilePath("api.yaml"),
//	    migrator.WithLogger(logger),
//	)
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
}

// NewSlogAdapter wraps a slog.Logger in the [Logger] interface.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &slogAdapter{logger: logger}
}

type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(msg string, attrs ...any) {
	a.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, argsToAttrs(attrs)...)
}

func (a *slogAdapter) Info(msg string, attrs ...any) {
	a.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, argsToAttrs(attrs)...)
}

func (a *slogAdapter) Warn(msg string, attrs ...any) {
	a.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, argsToAttrs(attrs)...)
}

func (a *slogAdapter) Error(msg string, attrs ...any) {
	a.logger.LogAttrs(context.Background(), slog.LevelError, msg, argsToAttrs(attrs)...)
}

// argsToAttrs converts alternating key-value pairs to slog attributes.
// A trailing key without a value is dropped.
func argsToAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}

// noopLogger discards all log output.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// log returns the configured logger or a no-op fallback.
func (m *Migrator) log() Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return noopLogger{}
}
