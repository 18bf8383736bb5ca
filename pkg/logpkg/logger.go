// Package logpkg builds the harness logger.
package logpkg

import (
	"io"
	"os"
	"time"

	"github.com/go-petr/bank-e2e/pkg/configpkg"
	"github.com/rs/zerolog"
)

// New returns the logger configured for the current environment.
//
// Development gets a console writer at trace level with caller info; every
// other environment logs JSON at info level.
func New(config configpkg.Config) zerolog.Logger {
	var (
		output   io.Writer = os.Stderr
		logLevel           = zerolog.InfoLevel
	)

	if !config.LoggingEnabled {
		logLevel = zerolog.ErrorLevel
	}

	logger := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environment == "development" {
		logger = logger.
			Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return logger
}
