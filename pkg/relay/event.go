package relay

import (
	"time"

	"github.com/google/uuid"
)

// Event carries exactly one value from a producer to a consumer. It is
// created once per delivery and never modified afterwards.
type Event[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	value     T
}

// NewEvent wraps v in a new event with a fresh id
func NewEvent[T any](v T) Event[T] {
	return Event[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		value:     v,
	}
}

// Value returns the carried value
func (e Event[T]) Value() T {
	return e.value
}

// ID returns the id assigned when the event was created
func (e Event[T]) ID() uuid.UUID {
	return e.id
}

// CreatedAt time creation (UTC)
func (e Event[T]) CreatedAt() time.Time {
	return e.createdAt
}

// IsZero reports whether the event was built without NewEvent.
func (e Event[T]) IsZero() bool {
	return e.id == uuid.Nil
}
