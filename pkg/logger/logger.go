// Package logger holds the library-wide zerolog logger. Progress bars own
// stdout, so every log line goes to stderr; the default level is error so
// a well-behaved session stays silent. Set PURRGRESS_LOG=debug to watch
// backend degradation and probe decisions.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = newLogger(os.Stderr, levelFromEnv())
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func levelFromEnv() zerolog.Level {
	raw := os.Getenv("PURRGRESS_LOG")
	if raw == "" {
		return zerolog.ErrorLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.ErrorLevel
	}
	return level
}

// SetLevel changes the level of the package logger.
func SetLevel(level zerolog.Level) {
	logger = logger.Level(level)
}

// SetOutput redirects the package logger, returning a restore func. Meant
// for tests.
func SetOutput(w io.Writer) func() {
	prev := logger
	logger = newLogger(w, zerolog.DebugLevel)
	return func() { logger = prev }
}

func Debug(msg string) {
	logger.Debug().Msg(msg)
}

func Debugf(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

func Info(msg string) {
	logger.Info().Msg(msg)
}

func Infof(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

func Warn(msg string) {
	logger.Warn().Msg(msg)
}

func Warnf(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

func Error(msg string) {
	logger.Error().Msg(msg)
}

func Errorf(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

// WithErr logs an error with a message at debug level. The rendering path
// uses this for failures that degrade instead of propagating.
func WithErr(err error, msg string) {
	logger.Debug().Err(err).Msg(msg)
}
