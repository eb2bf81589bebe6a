// Package logging wires charmbracelet/log behind the Logger interface used across zentimer.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the structured logger every component receives.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Options configures New.
type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

// New returns a charmbracelet logger. Unknown levels fall back to info.
func New(opts Options) Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
	})
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return log.New(io.Discard)
}
