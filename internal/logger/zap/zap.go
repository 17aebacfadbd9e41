package zap

import (
	"fmt"

	"github.com/adwski/go-metric"
	"github.com/adwski/go-metric/internal/logger"

	"go.uber.org/zap"
)

var _ logger.External = (*Logger)(nil)

// Logger adapts zap.Logger to logger.External.
type Logger struct {
	*zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{
		Logger: logger.WithOptions(zap.AddCallerSkip(1)),
	}
}

func (l *Logger) Error(msg string, fields []any) {
	l.Logger.Error(msg, zapFields(fields)...)
}

func (l *Logger) Info(msg string, fields []any) {
	l.Logger.Info(msg, zapFields(fields)...)
}

func (l *Logger) Debug(msg string, fields []any) {
	l.Logger.Debug(msg, zapFields(fields)...)
}

// Trace is emitted with debug level since zap has no trace level.
func (l *Logger) Trace(msg string, fields []any) {
	l.Logger.Debug(msg, zapFields(fields)...)
}

// zapFields converts key-value pairs into zap fields.
// Counters are rendered with their current value.
func zapFields(fields []any) []zap.Field {
	if len(fields)%2 != 0 {
		fields = fields[:len(fields)-1]
	}
	zfs := make([]zap.Field, 0, len(fields)/2)

	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch val := fields[i+1].(type) {
		case metric.Counter:
			zfs = append(zfs, zap.Uint64(key, val.Count()))
		case fmt.Stringer:
			zfs = append(zfs, zap.Stringer(key, val))
		case error:
			zfs = append(zfs, zap.NamedError(key, val))
		default:
			zfs = append(zfs, zap.Any(key, val))
		}
	}

	return zfs
}
