package link

import (
	"context"
	"sync"
	"testing"

	"github.com/ib-77/relay/pkg/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_FeedsTwoStages(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	src := NewManual[string](WithDispatcher(d))

	var mu sync.Mutex
	var seen []string
	record := func(name string) *Stage[string, string] {
		return Tee(func(ctx context.Context, v string) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, name+":"+v)
		}, WithDispatcher(d))
	}

	relay.Fan[string](src, record("left"), record("right"))

	assert.Equal(t, 2, src.Inject(context.Background(), "a"))
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"left:a", "right:a"}, seen)
}

func TestManual_SenderIsSource(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	src := NewManual[int](WithDispatcher(d))
	out := &sink[int]{}
	src.Subscribe(out)

	src.Inject(context.Background(), 1)
	d.Wait()

	require.Len(t, out.Senders(), 1)
	assert.Same(t, src, out.Senders()[0])
}

func TestManual_NoSubscribers(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	src := NewManual[int](WithDispatcher(d))

	assert.Equal(t, 0, src.Inject(context.Background(), 1))
	assert.Equal(t, int64(0), d.Stats().Scheduled)
}

func TestManual_InjectMany(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	src := NewManual[int](WithDispatcher(d))
	a, b := &sink[int]{}, &sink[int]{}
	src.Subscribe(a)
	src.Subscribe(b)

	n := src.InjectMany(context.Background(), 1, 2, 3)
	d.Wait()

	assert.Equal(t, 6, n)
	assert.ElementsMatch(t, []int{1, 2, 3}, a.Values())
	assert.ElementsMatch(t, []int{1, 2, 3}, b.Values())
}

func TestManual_DeliveryErrorsGoToDispatcher(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	src := NewManual[int](WithDispatcher(d))
	src.Subscribe(Try(func(ctx context.Context, x int) (int, error) {
		return 0, assert.AnError
	}, WithDispatcher(d)))

	src.Inject(context.Background(), 1)
	d.Wait()

	assert.Equal(t, int64(1), d.Stats().Failed)
}
