// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits of the log file.
const (
	MaxSizeMB  = 100
	MaxBackups = 3
	MaxAgeDays = 28
)

// New creates a configured application logger.
// It writes to Stderr so that stdout stays free for traces.
// If file is set, records are also appended to that file, which is rotated
// by size. The returned closer closes the file.
func New(level slog.Level, file string) (*slog.Logger, io.Closer, error) {
	if file == "" {
		return NewWriter(os.Stderr, level), nopCloser{}, nil
	}
	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
		MaxAge:     MaxAgeDays,
		Compress:   true,
	}
	return NewWriter(io.MultiWriter(os.Stderr, rotated), level), rotated, nil
}

// NewWriter creates a logger writing text records to w.
// It standardizes common keys (e.g., "error" -> "err").
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel parses "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// MustLevel is ParseLevel for fixed level names. It panics on error.
func MustLevel(s string) slog.Level {
	l, err := ParseLevel(s)
	if err != nil {
		panic(err)
	}
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
