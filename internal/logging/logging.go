// Package logging configures the global zerolog logger.
//
// The TUI owns the terminal, so interactive runs log JSON to a file under
// the XDG state directory. Line-mode commands run with --verbose write
// human-readable output to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the log sink and level.
type Options struct {
	Level   string
	File    string
	Console bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the global logger. The returned closer releases the log
// file, if one was opened.
func Setup(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)

	if opts.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		return nopCloser{}, nil
	}

	path := opts.File
	if path == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// DefaultLogPath resolves the log file location:
// 1. $XDG_STATE_HOME/factz/factz.log
// 2. ~/.local/state/factz/factz.log
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "factz", "factz.log"), nil
}
