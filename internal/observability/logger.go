package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LoggerConfig controls how the process logger is built.
type LoggerConfig struct {
	Level  string
	Format string // json or console
}

// NewLogger builds the process logger. When ring is non-nil every event is
// also captured in the ring buffer for the admin log view.
func NewLogger(cfg LoggerConfig, ring *LogRing) zerolog.Logger {
	var console io.Writer = os.Stdout
	if cfg.Format == "console" {
		console = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	var out io.Writer = console
	if ring != nil {
		out = zerolog.MultiLevelWriter(console, ring)
	}

	return zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
