package link

import (
	"context"

	"github.com/google/uuid"
	"github.com/ib-77/relay/pkg/relay"
	"github.com/ib-77/relay/pkg/relay/core"
)

type settings struct {
	name       string
	dispatcher *core.Dispatcher
	threshold  int
	explicit   bool
}

type Option func(*settings)

// WithName sets the name reported in TransformError.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithDispatcher pins the dispatcher used for downstream deliveries. Without
// it the dispatcher is taken from the delivery context (core.DispatcherFrom).
func WithDispatcher(d *core.Dispatcher) Option {
	return func(s *settings) {
		s.dispatcher = d
	}
}

// WithThreshold sets the group size of an Aggregator. Ignored by Stage.
func WithThreshold(k int) Option {
	return func(s *settings) {
		s.threshold = k
		s.explicit = true
	}
}

// WithDynamicThreshold makes an Aggregator use the subscriber count of the
// sender as its group size. This is the default when no threshold is given;
// prefer WithThreshold.
func WithDynamicThreshold() Option {
	return func(s *settings) {
		s.threshold = 0
		s.explicit = false
	}
}

func newSettings(kind string, opts []Option) settings {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.name == "" {
		s.name = kind + "-" + uuid.NewString()[:8]
	}
	return s
}

func (s settings) dispatcherFor(ctx context.Context) *core.Dispatcher {
	if s.dispatcher != nil {
		return s.dispatcher
	}
	return core.DispatcherFrom(ctx)
}

func (s settings) Name() string {
	return s.name
}

func emit[T any](ctx context.Context, s settings, sender relay.Source[T], subs []relay.Receiver[T], v T) int {
	return core.Broadcast(ctx, s.dispatcherFor(ctx), sender, subs, v)
}
