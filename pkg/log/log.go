// Package log provides the logger used throughout the emulator. The
// default implementation is backed by logrus, configured to produce
// plain, untimestamped text so that traces can be diffed between runs.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used by the emulator components.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger writing to stdout at info level.
func New() Logger {
	return NewWithOutput(os.Stdout, logrus.InfoLevel)
}

// NewWithOutput returns a Logger writing to w at the given level.
func NewWithOutput(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	return &logger{Logger: l}
}

// NewWithLevel parses a level name ("debug", "info", "error", ...)
// and returns a Logger writing to stdout at that level.
func NewWithLevel(level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return NewWithOutput(os.Stdout, lvl), nil
}

func (l *logger) Fatal(str string) {
	l.Logger.Fatal(str)
}
