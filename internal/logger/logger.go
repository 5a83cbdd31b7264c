// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// go-user-hub application.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NoRequestID is the request_id value bound to log entries emitted outside
// of any request scope (startup, background jobs, schedulers).
const NoRequestID = "no-request-id"

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// Config controls the sinks and verbosity of a logger built by [NewLogger].
type Config struct {
	// Level is the minimum level emitted ("debug", "info", "warn", "error").
	// Unknown or empty values fall back to "info".
	Level string

	// FilePath, when non-empty, enables a secondary structured (JSON) sink
	// written to a rotating, size-capped, compressed log file.
	FilePath string
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "server", "worker").
//
// The logger is configured with:
//   - a colorized human-readable console sink on os.Stdout;
//   - if cfg.FilePath is set, a JSON file sink rotated at 10 MB, retained
//     for 30 days, with rotated files compressed;
//   - a "role" field set to role, useful for filtering logs from different
//     application components;
//   - a "ts" timestamp field added to every log entry.
//
// Sink configuration can not fail request handling: if the log directory
// cannot be created the file sink is skipped and the console sink is used
// alone.
func NewLogger(role string, cfg Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout}}
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    10, // megabytes
				MaxAge:     30, // days
				Compress:   true,
				MaxBackups: 10,
			})
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithComponent returns a child logger with the "context" field set to the
// given component name. It is the Go rendition of get_logger(name): the
// request_id field is inherited from whatever logger the middleware bound
// into the context.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{l.With().Str("context", name).Logger()}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
//
// This is typically used in HTTP handlers after the tracing middleware has
// attached a request-scoped logger to the context via zerolog's WithContext.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its global logger,
// so this function never returns nil. When the context carries no request
// identifier the returned logger is bound with request_id=[NoRequestID] so
// every record has the field.
func FromContext(ctx context.Context) *Logger {
	l := Logger{*log.Ctx(ctx)}
	if _, ok := utils.GetRequestIDFromContext(ctx); !ok {
		return &Logger{l.With().Str("request_id", NoRequestID).Logger()}
	}
	return &l
}
