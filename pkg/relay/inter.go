package relay

import (
	"context"

	"github.com/google/uuid"
)

// Receiver accepts deliveries from a Source
type Receiver[T any] interface {
	// Deliver handles one event raised by sender. A returned error means the
	// receiver did not forward anything downstream for this event.
	Deliver(ctx context.Context, sender Source[T], ev Event[T]) error
}

// Source raises events to its subscribers
type Source[T any] interface {
	// Subscribe registers r and returns the id used to unsubscribe it
	Subscribe(r Receiver[T]) uuid.UUID
	// Unsubscribe removes the subscription, false if id is unknown
	Unsubscribe(id uuid.UUID) bool
	// Subscribers returns a snapshot of the registered receivers in subscription order
	Subscribers() []Receiver[T]
}

// Link is anything that can sit between two elements of a pipeline.
type Link[In, Out any] interface {
	Receiver[In]
	Source[Out]
}

// HandlerFunc adapts a plain function to Receiver
type HandlerFunc[T any] func(ctx context.Context, sender Source[T], ev Event[T]) error

func (f HandlerFunc[T]) Deliver(ctx context.Context, sender Source[T], ev Event[T]) error {
	return f(ctx, sender, ev)
}

// Terminal adapts a result handler that only cares about the value.
func Terminal[T any](onResult func(ctx context.Context, v T)) Receiver[T] {
	return HandlerFunc[T](func(ctx context.Context, _ Source[T], ev Event[T]) error {
		onResult(ctx, ev.Value())
		return nil
	})
}

// Then subscribes down to up and returns down, so links can be chained:
//
//	relay.Then(relay.Then(src, parse), enrich)
func Then[T, Out any](up Source[T], down Link[T, Out]) Link[T, Out] {
	up.Subscribe(down)
	return down
}

// Fan subscribes every receiver in downs to up and returns the subscription ids
// in the same order.
func Fan[T any](up Source[T], downs ...Receiver[T]) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(downs))
	for _, d := range downs {
		ids = append(ids, up.Subscribe(d))
	}
	return ids
}
