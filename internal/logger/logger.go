// Package logger initializes structured logging with zerolog, following
// the shape of freeeve-polite-betrayal's internal/logger (global logger,
// LOG_LEVEL env var, console writer), scoped down to what a single-process
// relay server needs.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger for level and output format.
func Init(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true})
}
