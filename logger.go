package phono

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with phono-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBuild logs inventory construction.
func (l *Logger) LogBuild(segments int, err error) {
	if err != nil {
		l.Error("inventory build failed",
			"segments", segments,
			"error", err,
		)
	} else {
		l.Debug("inventory built",
			"segments", segments,
		)
	}
}

// LogDerive logs sub-inventory derivation.
func (l *Logger) LogDerive(selected, features int, distinctive bool) {
	l.Debug("inventory derived",
		"selected", selected,
		"features", features,
		"distinctive", distinctive,
	)
}

// LogParse logs a tokenizer run.
func (l *Logger) LogParse(textLen, tokens int, err error) {
	if err != nil {
		l.Debug("parse failed",
			"text_len", textLen,
			"error", err,
		)
	} else {
		l.Debug("parse completed",
			"text_len", textLen,
			"tokens", tokens,
		)
	}
}
