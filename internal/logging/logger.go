// Package logging provides structured logging for taxdesk using zerolog.
//
// The interactive client owns the terminal, so its logs go to a file;
// subcommands log to stderr.
//
//	log := logging.FromContext(ctx)
//	log.Error().Err(err).Str("record_id", id).Msg("save failed")
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var defaultLogger = New(os.Stderr, zerolog.InfoLevel)

// Nop discards everything.
var Nop = zerolog.Nop()

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
}

// New creates a JSON logger with timestamps writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewConsole creates a human-readable logger writing to w.
func NewConsole(w io.Writer, level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	return New(writer, level)
}

// ParseLevel maps a config string to a level. Unknown or empty values fall
// back to LOG_LEVEL and then to info.
func ParseLevel(s string) zerolog.Level {
	if strings.TrimSpace(s) == "" {
		s = os.Getenv("LOG_LEVEL")
	}
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// OpenFile opens (creating if needed) an append-only log file at path and
// returns a JSON logger writing to it. The caller closes the file.
func OpenFile(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Nop, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return Nop, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

type contextKey int

const loggerKey contextKey = iota

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithField adds one field to the context logger.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx).With().Interface(key, value).Logger()
	return WithLogger(ctx, &logger)
}
