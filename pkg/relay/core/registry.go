package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/ib-77/relay/pkg/relay"
)

type subscription[T any] struct {
	id       uuid.UUID
	receiver relay.Receiver[T]
}

// Registry is an ordered set of subscribers. It implements relay.Source and
// is embedded by every stage. The zero value is ready to use.
//
// Subscriptions are expected to change only while a pipeline is being built;
// changes made while deliveries are in flight are seen only by dispatches
// that snapshot the registry afterwards.
type Registry[T any] struct {
	mu   sync.RWMutex
	subs []subscription[T]
}

func (r *Registry[T]) Subscribe(rc relay.Receiver[T]) uuid.UUID {
	if relay.IsNil(rc) {
		return uuid.Nil
	}

	id := uuid.New()
	r.mu.Lock()
	r.subs = append(r.subs, subscription[T]{id: id, receiver: rc})
	r.mu.Unlock()
	return id
}

func (r *Registry[T]) Unsubscribe(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry[T]) Subscribers() []relay.Receiver[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]relay.Receiver[T], len(r.subs))
	for i, s := range r.subs {
		out[i] = s.receiver
	}
	return out
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
