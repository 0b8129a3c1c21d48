// Package logger builds the zerolog loggers shared by the server and opsctl.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "dlt-orchestrator"

// New returns the process logger: JSON on stdout, or a console writer
// when pretty is set. Unknown levels fall back to info.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return build(w, level).
		With().
		Str("service", serviceName).
		Caller().
		Logger()
}

// NewWithWriter returns a logger on w without the service and caller fields.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return build(w, level)
}

// Component tags every entry with the emitting engine component.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func build(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
