// Package events provides concurrent event dispatcher
// which reports its activity through pluggable counters.
//
// Dispatcher is generic over metric.Metric, so metrics can be disabled
// by instantiating it with metric.Noop:
//
//	d, err := events.New[metric.Noop](ctx, events.Config[metric.Noop]{
//		Handler: handle,
//	})
//
// or enabled with atomic counters:
//
//	d, err := events.New[*metric.Atomic](ctx, events.Config[*metric.Atomic]{
//		Handler: handle,
//		Handled: metric.NewAtomic(0),
//		Failed:  metric.NewAtomic(0),
//		Dropped: metric.NewAtomic(0),
//	})
package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/adwski/go-metric"
	"github.com/adwski/go-metric/internal/logger"

	"github.com/google/uuid"
)

var (
	ErrClosed    = errors.New("dispatcher is closed")
	ErrNotQueued = errors.New("event was not queued")
)

type (
	Event struct {
		Payload []byte
		ID      uuid.UUID
	}

	Handler func(context.Context, Event) error

	// Stats is a snapshot of dispatcher counters.
	Stats struct {
		Handled uint64
		Failed  uint64
		Dropped uint64
	}

	Dispatcher[M metric.Metric] struct {
		handler    Handler
		cancelFunc context.CancelFunc
		runCtx     context.Context

		wg        *sync.WaitGroup
		closeOnce *sync.Once

		// mx guards queue against sending after it is closed
		mx    *sync.RWMutex
		queue chan Event
		done  chan struct{}

		handled M
		failed  M
		dropped M

		logger logger.Logger

		workers uint

		closed atomic.Bool
	}
)

// New creates dispatcher and starts its workers.
// Dispatcher is closed when ctx is done or Close is called.
func New[M metric.Metric](ctx context.Context, cfg Config[M], opts ...Option) (*Dispatcher[M], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := &options{}
	o.setDefaults()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	log, err := o.logger()
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)

	d := &Dispatcher[M]{
		handler:    cfg.Handler,
		cancelFunc: cancel,
		runCtx:     runCtx,

		wg:        &sync.WaitGroup{},
		closeOnce: &sync.Once{},

		mx:    &sync.RWMutex{},
		queue: make(chan Event, cfg.QueueSize),
		done:  make(chan struct{}),

		handled: cfg.Handled,
		failed:  cfg.Failed,
		dropped: cfg.Dropped,

		logger:  log,
		workers: cfg.Workers,
	}

	for i := uint(0); i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}

	go func() {
		<-runCtx.Done()
		_ = d.Close()
	}()

	d.logger.Debug("dispatcher created",
		"workers", d.workers,
		"queueSize", cfg.QueueSize)

	return d, nil
}

// Submit puts event in queue. It blocks until event is queued,
// ctx is done or dispatcher is closed.
func (d *Dispatcher[M]) Submit(ctx context.Context, payload []byte) (Event, error) {
	ev := Event{ID: uuid.New(), Payload: payload}

	d.mx.RLock()
	defer d.mx.RUnlock()

	if d.closed.Load() {
		d.dropped.Inc()
		return ev, ErrClosed
	}

	select {
	case d.queue <- ev:
		d.logger.Trace("event queued", "id", ev.ID)
		return ev, nil
	case <-d.done:
		d.dropped.Inc()
		return ev, ErrClosed
	case <-ctx.Done():
		d.dropped.Inc()
		return ev, errors.Join(ErrNotQueued, ctx.Err())
	}
}

// TrySubmit puts event in queue if it has free space.
func (d *Dispatcher[M]) TrySubmit(payload []byte) (Event, bool) {
	ev := Event{ID: uuid.New(), Payload: payload}

	d.mx.RLock()
	defer d.mx.RUnlock()

	if d.closed.Load() {
		d.dropped.Inc()
		return ev, false
	}

	select {
	case d.queue <- ev:
		d.logger.Trace("event queued", "id", ev.ID)
		return ev, true
	default:
		d.dropped.Inc()
		d.logger.Debug("queue is full, event dropped", "id", ev.ID)
		return ev, false
	}
}

func (d *Dispatcher[M]) Stats() Stats {
	return Stats{
		Handled: d.handled.Count(),
		Failed:  d.failed.Count(),
		Dropped: d.dropped.Count(),
	}
}

// ResetStats resets dispatcher counters. Effect depends on
// metric implementation, e.g. it does nothing for metric.Atomic.
func (d *Dispatcher[M]) ResetStats() {
	d.handled.Reset()
	d.failed.Reset()
	d.dropped.Reset()
}

// LoggedErrors returns amount of error records dispatcher has logged.
func (d *Dispatcher[M]) LoggedErrors() uint64 {
	return d.logger.Errors()
}

// Close stops accepting events, waits until queued events are handled
// and workers are stopped. It is safe to call Close multiple times.
func (d *Dispatcher[M]) Close() error {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done) // unblock pending submits

		d.mx.Lock()
		close(d.queue)
		d.mx.Unlock()

		d.wg.Wait()
		d.cancelFunc()

		d.logger.Debug("dispatcher closed",
			"handled", d.handled,
			"failed", d.failed,
			"dropped", d.dropped)
	})

	return nil
}

func (d *Dispatcher[M]) work(n uint) {
	d.logger.Trace("dispatcher worker started", "worker", n)
	defer func() {
		d.wg.Done()
		d.logger.Trace("dispatcher worker exited", "worker", n)
	}()

	for ev := range d.queue {
		if err := d.handler(d.runCtx, ev); err != nil {
			d.failed.Inc()
			d.logger.Error("event handling failed",
				"id", ev.ID,
				"error", err)
			continue
		}
		d.handled.Inc()
		d.logger.Trace("event handled", "id", ev.ID)
	}
}
