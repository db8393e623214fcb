package link

import (
	"context"
	"errors"
	"sync"

	"github.com/ib-77/relay/pkg/relay"
	"github.com/ib-77/relay/pkg/relay/core"
)

type GroupFunc[In, Out any] func(ctx context.Context, group []In) (Out, error)

// Aggregator buffers inputs until the buffer holds threshold values, then
// runs the group transform once over the whole buffer and starts a new, empty
// collection. Every input ends up in exactly one group.
type Aggregator[In, Out any] struct {
	core.Registry[Out]
	settings
	group GroupFunc[In, Out]

	mu     sync.Mutex
	buffer []In
}

// NewAggregator fails with relay.ErrThreshold when an explicit threshold
// below 1 is given. Without WithThreshold the group size is inferred from the
// sender on every delivery.
func NewAggregator[In, Out any](group func(ctx context.Context, group []In) (Out, error), opts ...Option) (*Aggregator[In, Out], error) {
	s := newSettings("aggregator", opts)
	if s.explicit && s.threshold < 1 {
		return nil, relay.ErrThreshold
	}

	return &Aggregator[In, Out]{
		settings: s,
		group:    group,
	}, nil
}

// Threshold returns the explicit group size, 0 when it is inferred.
func (a *Aggregator[In, Out]) Threshold() int {
	if !a.explicit {
		return 0
	}
	return a.threshold
}

func (a *Aggregator[In, Out]) thresholdFor(sender relay.Source[In]) int {
	if a.explicit {
		return a.threshold
	}
	if relay.IsNil(sender) {
		return 1
	}
	return max(len(sender.Subscribers()), 1)
}

func (a *Aggregator[In, Out]) Deliver(ctx context.Context, sender relay.Source[In], ev relay.Event[In]) error {
	group := a.collect(a.thresholdFor(sender), ev.Value())
	if group == nil {
		return nil
	}
	return a.process(ctx, group)
}

// collect appends v and returns the complete group, nil while still collecting.
func (a *Aggregator[In, Out]) collect(threshold int, v In) []In {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.buffer = append(a.buffer, v)
	if len(a.buffer) < threshold {
		return nil
	}
	group := a.buffer
	a.buffer = nil
	return group
}

// Flush processes whatever is buffered regardless of the threshold. It is a
// no-op on an empty buffer.
func (a *Aggregator[In, Out]) Flush(ctx context.Context) error {
	a.mu.Lock()
	group := a.buffer
	a.buffer = nil
	a.mu.Unlock()

	if len(group) == 0 {
		return nil
	}
	return a.process(ctx, group)
}

// Pending returns the number of buffered inputs.
func (a *Aggregator[In, Out]) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.buffer)
}

// process runs outside the lock; a failed group is dropped.
func (a *Aggregator[In, Out]) process(ctx context.Context, group []In) error {
	out, err := a.group(ctx, group)
	if err != nil {
		if errors.Is(err, ErrSkip) {
			return nil
		}
		return &relay.TransformError{Stage: a.name, Inputs: len(group), Err: err}
	}

	emit[Out](ctx, a.settings, a, a.Subscribers(), out)
	return nil
}
