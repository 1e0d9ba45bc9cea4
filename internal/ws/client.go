package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Client struct {
	ID     string
	postID int64
	conn   *websocket.Conn
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the request and streams comment events for one post
// until the client goes away or the subscription ends.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, postID int64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &Client{ID: uuid.NewString(), postID: postID, conn: conn}

	// Subscribe before announcing the client so no event published
	// after registration can be missed.
	feed, cancel := h.bus.Subscribe(r.Context(), postID)
	defer cancel()

	h.register(client)
	defer func() {
		h.unregister(client)
		_ = conn.Close()
	}()

	// Drain reads so we notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-feed:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.Warn("live feed write failed", "client_id", client.ID, "error", err)
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
