package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/ib-77/relay/pkg/relay"
)

// Dispatcher schedules deliveries on a bounded pool of goroutines. Each
// scheduled delivery is independent: Dispatch returns immediately and the
// delivery releases its worker slot on every exit path.
type Dispatcher struct {
	slots    chan struct{}
	wg       sync.WaitGroup
	handlers Handlers
	logger   *slog.Logger

	scheduled atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	panicked  atomic.Int64
	running   atomic.Int64
}

var (
	sharedOnce sync.Once
	shared     *Dispatcher
)

// Shared returns the process-wide dispatcher, created on first use with
// DefaultOptions.
func Shared() *Dispatcher {
	sharedOnce.Do(func() {
		shared = NewDispatcher(DefaultOptions())
	})
	return shared
}

func NewDispatcher(opts Options) *Dispatcher {
	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.Level()}))
	}

	handlers := opts.Handlers
	if handlers.OnError == nil && opts.LogErrors {
		handlers.OnError = LogErrors(logger)
	}

	return &Dispatcher{
		slots:    make(chan struct{}, workers),
		handlers: handlers,
		logger:   logger,
	}
}

// Workers returns the size of the pool.
func (d *Dispatcher) Workers() int {
	return cap(d.slots)
}

// Dispatch schedules run as an independent unit of work. The context passed
// to run is detached from ctx's cancellation: once scheduled, a delivery runs
// to completion.
func (d *Dispatcher) Dispatch(ctx context.Context, run func(ctx context.Context) error) {
	d.wg.Add(1)
	d.scheduled.Add(1)
	go d.execute(context.WithoutCancel(ctx), run)
}

func (d *Dispatcher) execute(ctx context.Context, run func(ctx context.Context) error) {
	d.slots <- struct{}{}
	d.running.Add(1)
	defer d.complete(ctx)

	if err := d.protect(ctx, run); err != nil {
		d.failed.Add(1)
		if d.handlers.OnError != nil {
			d.handlers.OnError(ctx, err)
		}
	}
}

func (d *Dispatcher) protect(ctx context.Context, run func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.panicked.Add(1)
			pe := &relay.PanicError{Value: r, Stack: debug.Stack()}
			d.logger.ErrorContext(ctx, "delivery panicked", slog.String("panic", fmt.Sprint(r)))
			err = pe
		}
	}()
	return run(ctx)
}

// complete is the release path of a delivery. Panics raised here are not
// recovered and take the process down.
func (d *Dispatcher) complete(ctx context.Context) {
	defer d.wg.Done()

	d.running.Add(-1)
	<-d.slots
	d.completed.Add(1)

	if d.handlers.OnComplete != nil {
		d.handlers.OnComplete(ctx)
	}
}

// Wait blocks until every scheduled delivery, including the ones scheduled
// by deliveries still running, has completed.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Workers:   cap(d.slots),
		Scheduled: d.scheduled.Load(),
		Completed: d.completed.Load(),
		Failed:    d.failed.Load(),
		Panicked:  d.panicked.Load(),
		Running:   d.running.Load(),
	}
}

// Deliver schedules one delivery of ev to r on d.
func Deliver[T any](ctx context.Context, d *Dispatcher, sender relay.Source[T], r relay.Receiver[T], ev relay.Event[T]) {
	d.Dispatch(ctx, func(ctx context.Context) error {
		return r.Deliver(ctx, sender, ev)
	})
}

// Broadcast schedules one delivery of v to every receiver in receivers, each
// with its own Event. It returns the number of deliveries scheduled.
func Broadcast[T any](ctx context.Context, d *Dispatcher, sender relay.Source[T], receivers []relay.Receiver[T], v T) int {
	for _, r := range receivers {
		Deliver(ctx, d, sender, r, relay.NewEvent(v))
	}
	return len(receivers)
}
