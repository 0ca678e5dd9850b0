// Package logger holds the process wide zerolog logger and the request scoped
// children derived from it.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestIDField is the key request scoped entries carry the request id under
const RequestIDField = "requestID"

// LogLevel is one of zerolog's level names
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Config selects the level and output format
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var defaultLogger zerolog.Logger

// Configure replaces the process wide logger. Unknown levels fall back to info.
func Configure(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level, err := zerolog.ParseLevel(string(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	defaultLogger = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// WithRequestID returns a copy of ctx carrying a child logger tagged with requestID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := defaultLogger.With().Str(RequestIDField, requestID).Logger()
	return l.WithContext(ctx)
}

// Ctx returns the request logger stored in ctx, or the process wide logger
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &defaultLogger
}

func Debug() *zerolog.Event { return defaultLogger.Debug() }
func Info() *zerolog.Event  { return defaultLogger.Info() }
func Warn() *zerolog.Event  { return defaultLogger.Warn() }
func Error() *zerolog.Event { return defaultLogger.Error() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
