package events

import (
	"errors"
	"reflect"

	"github.com/adwski/go-metric"
	"github.com/adwski/go-metric/internal/logger"
	"github.com/adwski/go-metric/internal/logger/noop"
	zaplogger "github.com/adwski/go-metric/internal/logger/zap"
	zerologger "github.com/adwski/go-metric/internal/logger/zerolog"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

const (
	minWorkers = 1
)

var (
	ErrNilHandler = errors.New("event handler is not set")
	ErrNilMetric  = errors.New("metric is not set")
	ErrNilLogger  = errors.New("logger is not set")
)

type (
	// Config holds dispatcher configuration.
	// Metric fields must be set unless M is a value type like metric.Noop.
	Config[M metric.Metric] struct {
		// Handler processes events. Returned errors are logged
		// and counted with Failed, they never leave dispatcher.
		Handler Handler

		// Handled counts successfully processed events.
		Handled M
		// Failed counts events for which Handler returned error.
		Failed M
		// Dropped counts events which were not accepted into queue.
		Dropped M

		// Workers specifies amount of goroutines running Handler.
		// It cannot be less than 1 (minWorkers).
		Workers uint

		// QueueSize specifies capacity of event queue.
		// Zero means queue capacity equals Workers.
		QueueSize uint
	}

	Option func(*options) error

	options struct {
		ext         logger.External
		errCounter  metric.Metric
		level       string
		levelWasSet bool
	}
)

func (cfg *Config[M]) validate() error {
	if cfg.Handler == nil {
		return ErrNilHandler
	}
	if isNil(cfg.Handled) || isNil(cfg.Failed) || isNil(cfg.Dropped) {
		return ErrNilMetric
	}
	if cfg.Workers < minWorkers {
		cfg.Workers = minWorkers
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = cfg.Workers
	}

	return nil
}

func isNil[M metric.Metric](m M) bool {
	v := reflect.ValueOf(m)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

func (o *options) setDefaults() {
	o.ext = noop.NewLogger()
	o.errCounter = metric.Noop{}
	o.level = "info"
}

func (o *options) logger() (logger.Logger, error) {
	l, err := logger.NewWithLevel(o.ext, o.level)
	if err != nil {
		return logger.Logger{}, err
	}
	l.CountErrors(o.errCounter)

	return l, nil
}

func WithLogger(ext logger.External) Option {
	return func(o *options) error {
		if ext == nil {
			return ErrNilLogger
		}
		o.ext = ext
		return nil
	}
}

func WithZeroLogger(log zerolog.Logger) Option {
	return func(o *options) error {
		o.ext = zerologger.NewLogger(log)
		if !o.levelWasSet {
			// let zerolog do the filtering
			o.level = "trace"
		}
		return nil
	}
}

func WithZapLogger(log *zap.Logger) Option {
	return func(o *options) error {
		if log == nil {
			return ErrNilLogger
		}
		o.ext = zaplogger.NewLogger(log)
		if !o.levelWasSet {
			o.level = "trace"
		}
		return nil
	}
}

// WithLogLevel sets minimal level of dispatcher log records: error|info|debug|trace.
func WithLogLevel(level string) Option {
	return func(o *options) error {
		o.level = level
		o.levelWasSet = true
		return nil
	}
}

// WithErrorCounter sets counter of error log records produced by dispatcher.
func WithErrorCounter(m metric.Metric) Option {
	return func(o *options) error {
		if m == nil {
			return ErrNilMetric
		}
		o.errCounter = m
		return nil
	}
}
