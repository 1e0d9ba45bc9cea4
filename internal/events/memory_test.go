package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	a, cancelA := bus.Subscribe(ctx, 1)
	defer cancelA()
	b, cancelB := bus.Subscribe(ctx, 1)
	defer cancelB()
	other, cancelOther := bus.Subscribe(ctx, 2)
	defer cancelOther()

	ev := Event{ID: "e1", PostID: 1, CommentID: 10, Body: "hi", CreatedAt: time.Now()}
	require.NoError(t, bus.Publish(ctx, ev))

	for _, ch := range []<-chan Event{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, ev.ID, got.ID)
			assert.Equal(t, int64(1), got.PostID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}

	select {
	case got := <-other:
		t.Fatalf("post 2 subscriber received foreign event %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBusCancelClosesChannel(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch, cancel := bus.Subscribe(ctx, 1)
	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// publishing after cancel must not panic or block
	require.NoError(t, bus.Publish(ctx, Event{ID: "e2", PostID: 1}))
}

func TestMemoryBusDropsWhenSubscriberIsFull(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch, cancel := bus.Subscribe(ctx, 1)
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		require.NoError(t, bus.Publish(ctx, Event{PostID: 1, CommentID: int64(i)}))
	}

	assert.Len(t, ch, subscriberBuffer)
}
