// Package logging provides the shared zerolog setup: a configurable root
// logger and helpers for carrying component loggers through contexts.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name; invalid values fall back to info.
	Level string

	// Format is "console" for human-readable output, "json" for structured
	// output, or "auto" to pick console on a terminal and json otherwise.
	Format string

	// File is an optional log file path; output goes to stderr when empty.
	File string
}

// Result holds a constructed logger and its file handle, if any.
type Result struct {
	Logger zerolog.Logger

	// UsingFile is true when log output goes to File.
	UsingFile bool

	// FilePath is the resolved log file path when UsingFile is set.
	FilePath string

	file *os.File
}

// Close releases the log file handle, if one was opened.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger from cfg. A file that cannot be opened degrades to
// stderr rather than failing the command.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	result := Result{}

	if cfg.File != "" {
		file, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr == nil {
			out = file
			result.UsingFile = true
			result.FilePath = cfg.File
			result.file = file
		}
	}

	format := cfg.Format
	if format == "" || format == "auto" {
		format = "json"
		if !result.UsingFile && term.IsTerminal(int(os.Stderr.Fd())) {
			format = "console"
		}
	}
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	result.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return result
}

// ComponentLogger returns a child logger tagged with a component field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext stores the logger in a context.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was stored.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
