// Package logging builds the process logger from config.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New creates a logger with the configured level and format. An invalid
// level falls back to info.
func New(level, format string) zerolog.Logger {
	var output io.Writer = os.Stderr
	if strings.ToLower(format) == "console" {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	return zerolog.New(output).Level(parsed).With().Timestamp().Logger()
}
