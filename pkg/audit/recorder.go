package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// writeTimeout bounds one sink write so a stuck sink cannot wedge the
// worker forever.
const writeTimeout = 5 * time.Second

// Sink persists audit records.
type Sink interface {
	Write(ctx context.Context, rec *Record) error
	Close() error
}

// Recorder accepts records without blocking the request path. A single
// background worker drains the buffer into every sink; sink failures
// are self-logged and never surface to the client.
type Recorder struct {
	ch      chan *Record
	sinks   []Sink
	logger  *slog.Logger
	wg      sync.WaitGroup
	dropped atomic.Int64
	onDrop  func()

	closeOnce sync.Once
}

// NewRecorder creates a recorder draining into the given sinks.
func NewRecorder(buffer int, logger *slog.Logger, sinks ...Sink) *Recorder {
	if buffer <= 0 {
		buffer = 1024
	}
	r := &Recorder{
		ch:     make(chan *Record, buffer),
		sinks:  sinks,
		logger: logger,
	}
	r.wg.Add(1)
	go r.worker()
	return r
}

// OnDrop registers a callback invoked once per dropped record. Must be
// set before the recorder receives traffic.
func (r *Recorder) OnDrop(fn func()) {
	r.onDrop = fn
}

// Record enqueues a record. When the buffer is full the record is
// dropped and counted; the caller is never blocked or failed.
func (r *Recorder) Record(rec *Record) {
	select {
	case r.ch <- rec:
	default:
		n := r.dropped.Add(1)
		if r.onDrop != nil {
			r.onDrop()
		}
		r.logger.Warn("audit buffer full, dropping record",
			"request_id", rec.RequestID, "dropped_total", n)
	}
}

// Dropped returns the number of records dropped since startup.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close drains remaining records, stops the worker, and closes every
// sink.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.ch)
	})
	r.wg.Wait()

	var firstErr error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for rec := range r.ch {
		for _, s := range r.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			if err := s.Write(ctx, rec); err != nil {
				r.logger.Warn("audit sink write failed",
					"request_id", rec.RequestID, "error", err)
			}
			cancel()
		}
	}
}
