package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"logview/config"
)

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"

	ConsoleFormat = "console"
	JSONFormat    = "json"

	TimeFormat = "2006-01-02 15:04:05"
)

// Setup configures the global zerolog logger from cfg and returns it.
// Output goes to stderr.
func Setup(cfg *config.Config) zerolog.Logger {
	return SetupWithOutput(cfg, os.Stderr)
}

// SetupWithOutput is Setup writing to out.
func SetupWithOutput(cfg *config.Config, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := getLogLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)

	var w io.Writer = out
	if cfg.Log.Format != JSONFormat {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: TimeFormat}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

func getLogLevel(level string) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
