// Package logging provides structured logging for the Likhlo core.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// global logger instance
	global *logrus.Logger
	once   sync.Once
)

// Init initializes the global logger. Only the first call has any effect.
func Init(out io.Writer, level logrus.Level) {
	once.Do(func() {
		l := logrus.New()
		l.SetOutput(out)
		l.SetLevel(level)
		l.SetFormatter(&logrus.JSONFormatter{})
		global = l
	})
}

// Get returns the global logger instance, initializing it with defaults
// when Init was never called.
func Get() *logrus.Logger {
	if global == nil {
		Init(os.Stdout, logrus.InfoLevel)
	}
	return global
}

// ParseLevel maps a config string to a logrus level, defaulting to info.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Convenience functions using the global logger

func Debug(message string, fields ...logrus.Fields) {
	entry(fields...).Debug(message)
}

func Info(message string, fields ...logrus.Fields) {
	entry(fields...).Info(message)
}

func Warn(message string, fields ...logrus.Fields) {
	entry(fields...).Warn(message)
}

func Error(message string, err error, fields ...logrus.Fields) {
	e := entry(fields...)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(message)
}

// entry merges the given field maps into a single log entry.
func entry(fields ...logrus.Fields) *logrus.Entry {
	e := logrus.NewEntry(Get())
	for _, f := range fields {
		e = e.WithFields(f)
	}
	return e
}
