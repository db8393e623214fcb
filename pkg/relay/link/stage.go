package link

import (
	"context"
	"errors"

	"github.com/ib-77/relay/pkg/relay"
	"github.com/ib-77/relay/pkg/relay/core"
)

// ErrSkip returned by a transform drops the value: nothing is dispatched and
// Deliver reports no error.
var ErrSkip = errors.New("skip value")

// Transformer is implemented by stage authors who prefer a type over a func.
type Transformer[In, Out any] interface {
	Transform(ctx context.Context, in In) (Out, error)
}

type TransformFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f TransformFunc[In, Out]) Transform(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

// Stage transforms one input into one output and forwards the output to
// every subscriber.
type Stage[In, Out any] struct {
	core.Registry[Out]
	settings
	transform Transformer[In, Out]
}

func New[In, Out any](transform func(ctx context.Context, in In) (Out, error), opts ...Option) *Stage[In, Out] {
	return From[In, Out](TransformFunc[In, Out](transform), opts...)
}

func From[In, Out any](t Transformer[In, Out], opts ...Option) *Stage[In, Out] {
	return &Stage[In, Out]{
		settings:  newSettings("stage", opts),
		transform: t,
	}
}

// Deliver runs the transform on the caller's goroutine. On failure the error
// is returned as *relay.TransformError and nothing is dispatched; otherwise
// the output is scheduled for every current subscriber and Deliver returns
// without waiting for those deliveries.
func (s *Stage[In, Out]) Deliver(ctx context.Context, _ relay.Source[In], ev relay.Event[In]) error {
	out, err := s.transform.Transform(ctx, ev.Value())
	if err != nil {
		if errors.Is(err, ErrSkip) {
			return nil
		}
		return &relay.TransformError{Stage: s.name, Inputs: 1, Err: err}
	}

	emit[Out](ctx, s.settings, s, s.Subscribers(), out)
	return nil
}
