package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the process-wide logger. "text" selects the console writer
// for interactive use; anything else emits structured JSON.
func Setup(format string) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
