package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogOptions control console output formatting for the process logger.
type LogOptions struct {
	Timestamp bool
	NoColor   bool
}

// InitLogger builds the process logger and installs it as the global
// zerolog logger. The level is adjusted separately by the logging
// package from environment settings.
func InitLogger(app string, out io.Writer, opts LogOptions) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:     out,
		NoColor: opts.NoColor,
	}
	if opts.Timestamp {
		output.TimeFormat = time.RFC3339
	}
	ctx := zerolog.New(output).With().Str("app", app)
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	logger := ctx.Logger()
	log.Logger = logger
	return logger
}
