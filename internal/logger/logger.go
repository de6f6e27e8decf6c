// Package logger provides structured logging using slog for lingora.
//
// Logs never go to stdout, which carries command results. By default they are
// discarded; Init can route them to stderr, a file, or both.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// Default is the default logger instance.
	Default *slog.Logger

	logFile *os.File
)

func init() {
	Default = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Config holds logger configuration.
type Config struct {
	// Path is an optional log file, appended to.
	Path string
	// Level is one of debug, info, warn or error. Anything else means info.
	Level string
	// Output receives log lines besides Path; nil means none.
	Output io.Writer
}

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init initializes the logger with the given configuration. Calling it again
// replaces the previous logger and closes its file.
func Init(cfg Config) error {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var writers []io.Writer

	if cfg.Output != nil {
		writers = append(writers, cfg.Output)
	}

	var file *os.File
	if cfg.Path != "" {
		logDir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}

	Close()
	logFile = file
	Default = slog.New(slog.NewTextHandler(writer, opts))
	return nil
}

// Close closes the log file, if any, and discards further output.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		Default = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	Default.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Default.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Default.Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}
