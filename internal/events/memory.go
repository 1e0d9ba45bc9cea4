package events

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// MemoryBus is the in-process Bus used when no redis address is
// configured, and in tests. Slow subscribers drop events rather than
// block the publisher.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[int64]map[chan Event]struct{}
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int64]map[chan Event]struct{})}
}

func (b *MemoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[ev.PostID] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, postID int64) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	if b.subs[postID] == nil {
		b.subs[postID] = make(map[chan Event]struct{})
	}
	b.subs[postID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[postID], ch)
			if len(b.subs[postID]) == 0 {
				delete(b.subs, postID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
