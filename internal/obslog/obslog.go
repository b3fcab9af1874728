// Package obslog configures the process-wide zerolog logger used
// throughout the enclave.
package obslog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-writer logger for local/dev use and a bare JSON
// logger otherwise, tagged with service and component fields the way the
// rest of the pack's services do.
func New(service string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Str("service", service).Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", service).Logger()
	}
	return logger
}
