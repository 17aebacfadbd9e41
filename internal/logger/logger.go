package logger

import (
	"errors"

	"github.com/adwski/go-metric"
)

const (
	levelTrace = iota - 2
	levelDebug
	levelInfo
	levelError
)

var (
	ErrInvalidLevel = errors.New("invalid log level")
)

type (
	External interface {
		Error(string, []any)
		Info(string, []any)
		Debug(string, []any)
		Trace(string, []any)
	}

	// Logger filters records by level and passes them to External.
	// It also tallies error records using provided counter.
	Logger struct {
		ext    External
		errors metric.Metric
		lvl    int
	}
)

func parseLevel(level string) (int, error) {
	switch level {
	case "trace":
		return levelTrace, nil
	case "debug":
		return levelDebug, nil
	case "info":
		return levelInfo, nil
	case "error":
		return levelError, nil
	default:
		return 0, ErrInvalidLevel
	}
}

func New(ext External) Logger {
	return Logger{ext: ext, errors: metric.Noop{}}
}

func NewWithLevel(ext External, level string) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return Logger{}, err
	}

	l := New(ext)
	l.lvl = lvl

	return l, nil
}

func (l *Logger) Level(lvl int) {
	l.lvl = lvl
}

// SetLevel sets level from its string representation.
func (l *Logger) SetLevel(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	l.lvl = lvl

	return nil
}

// CountErrors installs counter for error records.
// Counter is shared between copies of Logger made after this call.
func (l *Logger) CountErrors(m metric.Metric) {
	if m == nil {
		m = metric.Noop{}
	}
	l.errors = m
}

// Errors returns amount of error records emitted so far.
func (l *Logger) Errors() uint64 {
	if l.errors == nil {
		return 0
	}
	return l.errors.Count()
}

func (l *Logger) Trace(msg string, args ...any) {
	if l.lvl > levelTrace {
		return
	}

	l.ext.Trace(msg, args)
}

func (l *Logger) Debug(msg string, args ...any) {
	if l.lvl > levelDebug {
		return
	}

	l.ext.Debug(msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	if l.lvl > levelInfo {
		return
	}

	l.ext.Info(msg, args)
}

func (l *Logger) Error(msg string, args ...any) {
	if l.lvl > levelError {
		return
	}

	l.countError()
	l.ext.Error(msg, args)
}

func (l *Logger) TraceFunc(f func() (string, []any)) {
	if l.lvl > levelTrace {
		return
	}

	l.ext.Trace(f())
}

func (l *Logger) DebugFunc(f func() (string, []any)) {
	if l.lvl > levelDebug {
		return
	}

	l.ext.Debug(f())
}

func (l *Logger) InfoFunc(f func() (string, []any)) {
	if l.lvl > levelInfo {
		return
	}

	l.ext.Info(f())
}

func (l *Logger) ErrorFunc(f func() (string, []any)) {
	if l.lvl > levelError {
		return
	}

	l.countError()
	l.ext.Error(f())
}

func (l *Logger) countError() {
	if l.errors != nil {
		l.errors.Inc()
	}
}
