package link

import (
	"context"
	"sync"

	"github.com/ib-77/relay/pkg/relay"
)

// sink records every value delivered to it.
type sink[T any] struct {
	mu      sync.Mutex
	values  []T
	senders []relay.Source[T]
}

func (s *sink[T]) Deliver(_ context.Context, sender relay.Source[T], ev relay.Event[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, ev.Value())
	s.senders = append(s.senders, sender)
	return nil
}

func (s *sink[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.values...)
}

func (s *sink[T]) Senders() []relay.Source[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]relay.Source[T](nil), s.senders...)
}
