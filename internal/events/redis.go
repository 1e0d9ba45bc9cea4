package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisBus fans comment events out over redis Pub/Sub, one channel per
// post. Lets multiple API instances share one live feed.
type RedisBus struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisBus(addr string, logger *slog.Logger) (*RedisBus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("events: redis ping: %w", err)
	}
	return &RedisBus{client: client, logger: logger}, nil
}

func channel(postID int64) string {
	return fmt.Sprintf("comments.%d", postID)
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}
	if err := b.client.Publish(ctx, channel(ev.PostID), payload).Err(); err != nil {
		return fmt.Errorf("events: publish: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, postID int64) (<-chan Event, func()) {
	pubsub := b.client.Subscribe(ctx, channel(postID))
	ch := make(chan Event, subscriberBuffer)

	go func() {
		defer close(ch)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("dropping malformed comment event", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return ch, cancel
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
