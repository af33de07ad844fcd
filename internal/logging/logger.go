package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mahmudulbisd/stockgen-ai-pro/common"
	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	SetLevel(level common.LogLevel)
}

type defaultLogger struct {
	logger zerolog.Logger
	level  common.LogLevel
	mu     sync.Mutex
}

// NewDefaultLogger returns a JSON logger on stderr. Logging starts disabled.
func NewDefaultLogger() Logger {
	return NewLogger(os.Stderr)
}

// NewLogger returns a JSON logger writing to w.
func NewLogger(w io.Writer) Logger {
	return &defaultLogger{
		logger: zerolog.New(w).With().Timestamp().Logger(),
		level:  common.DisabledLevel,
	}
}

// NewConsoleLogger returns a human-readable logger for terminals.
func NewConsoleLogger(w io.Writer) Logger {
	return &defaultLogger{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger(),
		level:  common.DisabledLevel,
	}
}

func zerologLevel(level common.LogLevel) zerolog.Level {
	switch level {
	case common.DebugLevel:
		return zerolog.DebugLevel
	case common.InfoLevel:
		return zerolog.InfoLevel
	case common.WarnLevel:
		return zerolog.WarnLevel
	case common.ErrorLevel:
		return zerolog.ErrorLevel
	}
	return zerolog.Disabled
}

func (l *defaultLogger) enabled(level common.LogLevel) bool {
	return l.level != common.DisabledLevel && level >= l.level
}

func (l *defaultLogger) log(level common.LogLevel, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(level) {
		l.logger.WithLevel(zerologLevel(level)).Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	}
}

func (l *defaultLogger) logf(level common.LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enabled(level) {
		l.logger.WithLevel(zerologLevel(level)).Msgf(format, args...)
	}
}

func (l *defaultLogger) Debug(args ...interface{}) { l.log(common.DebugLevel, args...) }
func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.logf(common.DebugLevel, format, args...)
}
func (l *defaultLogger) Info(args ...interface{}) { l.log(common.InfoLevel, args...) }
func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.logf(common.InfoLevel, format, args...)
}
func (l *defaultLogger) Warn(args ...interface{}) { l.log(common.WarnLevel, args...) }
func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.logf(common.WarnLevel, format, args...)
}
func (l *defaultLogger) Error(args ...interface{}) { l.log(common.ErrorLevel, args...) }
func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.logf(common.ErrorLevel, format, args...)
}

func (l *defaultLogger) SetLevel(level common.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}
