package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bookledger/internal/config"
)

// New builds the process logger and installs it as the zerolog global logger.
// Format "console" gives human-readable output for local runs; anything else is JSON lines on stdout.
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(w).With().Timestamp().Str("service", "bookledger").Logger()
	log.Logger = l
	return l
}
