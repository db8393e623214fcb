package link

import (
	"context"

	"github.com/ib-77/relay/pkg/relay/core"
)

// Manual is a source without an input side. Inject pushes values into
// whatever is subscribed to it.
type Manual[T any] struct {
	core.Registry[T]
	settings
}

func NewManual[T any](opts ...Option) *Manual[T] {
	return &Manual[T]{settings: newSettings("manual", opts)}
}

// Inject schedules one delivery of v per current subscriber and returns the
// number of deliveries scheduled. It never waits for them.
func (m *Manual[T]) Inject(ctx context.Context, v T) int {
	return emit[T](ctx, m.settings, m, m.Subscribers(), v)
}

func (m *Manual[T]) InjectMany(ctx context.Context, values ...T) int {
	n := 0
	for _, v := range values {
		n += m.Inject(ctx, v)
	}
	return n
}
