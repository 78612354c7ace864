package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide root logger. Level comes from LOG_LEVEL
// (default info); ENV=development switches to the human-readable console
// writer with debug enabled.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if level > zerolog.DebugLevel {
			level = zerolog.DebugLevel
		}
	}
	return logger.Level(level)
}
