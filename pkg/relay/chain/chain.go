package chain

import (
	"context"
	"sync"

	"github.com/ib-77/relay/pkg/relay"
)

// Chain wires a source, an ordered list of stages and a terminal result
// handler. Every element receives and produces T.
type Chain[T any] struct {
	mu        sync.Mutex
	source    relay.Source[T]
	links     []relay.Link[T, T]
	finalized bool
}

func New[T any]() *Chain[T] {
	return &Chain[T]{}
}

// Source returns the chain's source, nil until SetSource succeeds
func (c *Chain[T]) Source() relay.Source[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Stages returns a copy of the appended stages in order
func (c *Chain[T]) Stages() []relay.Link[T, T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]relay.Link[T, T](nil), c.links...)
}

func (c *Chain[T]) Finalized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finalized
}

// SetSource assigns the source the first stage will be subscribed to.
func (c *Chain[T]) SetSource(source relay.Source[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if relay.IsNil(source) {
		return relay.ErrNilLink
	}
	if c.source != nil {
		return relay.ErrSourceAlreadySet
	}
	c.source = source
	return nil
}

// Append subscribes stage to the output of the last element of the chain
// (the source when the chain has no stage yet) and appends it.
func (c *Chain[T]) Append(stage relay.Link[T, T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.append(stage)
}

func (c *Chain[T]) append(stage relay.Link[T, T]) error {
	if relay.IsNil(stage) {
		return relay.ErrNilLink
	}
	if c.finalized {
		return relay.ErrFinalized
	}
	if c.source == nil {
		return relay.ErrNoSource
	}

	c.tail().Subscribe(stage)
	c.links = append(c.links, stage)
	return nil
}

// Finalize subscribes onResult to the output of the last element. No stage
// can be appended afterwards.
func (c *Chain[T]) Finalize(onResult func(ctx context.Context, v T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finalize(onResult)
}

func (c *Chain[T]) finalize(onResult func(ctx context.Context, v T)) error {
	if onResult == nil {
		return relay.ErrNilLink
	}
	if c.finalized {
		return relay.ErrFinalized
	}
	if c.source == nil {
		return relay.ErrNoSource
	}

	c.tail().Subscribe(relay.Terminal(onResult))
	c.finalized = true
	return nil
}

// Last appends stage and finalizes the chain with onResult in one step. When
// the append fails the chain is not finalized.
func (c *Chain[T]) Last(stage relay.Link[T, T], onResult func(ctx context.Context, v T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if onResult == nil {
		return relay.ErrNilLink
	}
	if err := c.append(stage); err != nil {
		return err
	}
	return c.finalize(onResult)
}

func (c *Chain[T]) tail() relay.Source[T] {
	if len(c.links) == 0 {
		return c.source
	}
	return c.links[len(c.links)-1]
}
