// Package ws serves the live comment feed. Each connection subscribes
// to one post's events and receives new comments as JSON frames; the
// snapshot endpoint stays a separate one-shot read.
package ws

import (
	"log/slog"
	"sync"

	"blogcore/internal/events"
)

type Hub struct {
	bus    events.Bus
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub(bus events.Bus, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		bus:     bus,
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("live feed subscriber connected", "client_id", c.ID, "post_id", c.postID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	h.logger.Info("live feed subscriber disconnected", "client_id", c.ID, "post_id", c.postID)
}

// ClientCount reports current subscribers across all posts.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
