// Package logger wraps zerolog with service-level fields.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger embeds a configured zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Config controls logger construction.
type Config struct {
	Level       string // debug | info | warn | error; default info
	Environment string // "development" enables the console writer
	ServiceName string
	Version     string
}

// New builds a Logger writing JSON to stdout (console format in development).
func New(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if cfg.Environment == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	log := out.Level(level).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.Version).
		Logger()

	return &Logger{Logger: log}
}
