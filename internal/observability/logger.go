package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	log zerolog.Logger
}

func NewLogger() *Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		level = parsed
	}
	return &Logger{log: zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()}
}

func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.log.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.log.Warn().Msg(msg)
}

func (l *Logger) Error(msg string, err error) {
	if l == nil {
		return
	}
	l.log.Error().Err(err).Msg(msg)
}

// Request logs one served HTTP request. Used by the logging middleware.
func (l *Logger) Request(method, path, requestID string, status int, duration time.Duration) {
	if l == nil {
		return
	}
	l.log.Info().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", status).
		Dur("duration", duration).
		Msg("request")
}
