// Package logger builds the zerolog loggers of the relex components.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LevelEnv is the environment variable read by NewLogger.
const LevelEnv = "RELEX_LOG_LEVEL"

func SetupLogging() {
	zerolog.LevelFieldName = "level_name"
	zerolog.TimestampFieldName = "timestamp"
}

// NewLogger returns a JSON logger on stderr tagged with component. The level
// comes from RELEX_LOG_LEVEL, INFO if unset or unknown.
func NewLogger(component string) zerolog.Logger {
	level, ok := os.LookupEnv(LevelEnv)
	if !ok {
		level = LevelInfo
	}

	return New(os.Stderr, component, level)
}

func New(w io.Writer, component, level string) zerolog.Logger {
	return zerolog.New(w).
		With().
		Str("component", component).
		Timestamp().
		Logger().
		Level(ParseLevel(level))
}

// ParseLevel maps a level name, case insensitive, to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	}

	return zerolog.InfoLevel
}
