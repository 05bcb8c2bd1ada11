package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one request-lifecycle notification pushed to connected UIs
// so they can refetch affected lists.
type Event struct {
	Type      string `json:"type"`
	RequestID uint   `json:"request_id"`
	// Internal marks events about internal comments; the hub keeps
	// them away from client-role subscribers.
	Internal bool `json:"-"`
}

const (
	EventRequestCreated = "request_created"
	EventStatusChanged  = "status_changed"
	EventCommentAdded   = "comment_added"
)

type subscriber struct {
	conn  *websocket.Conn
	staff bool
	send  chan Event
}

// Hub fans request events out to websocket subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a connection and pumps events to it until the
// connection drops. Blocks; call from the connection's handler.
func (h *Hub) Subscribe(conn *websocket.Conn, staff bool) {
	sub := &subscriber{
		conn:  conn,
		staff: staff,
		send:  make(chan Event, 16),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
		conn.Close()
	}()

	// Reader just drains control frames and detects disconnects.
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
		case event := <-sub.send:
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Publish sends an event to every subscriber allowed to see it. Slow
// subscribers are skipped rather than blocking the mutation path.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if event.Internal && !sub.staff {
			continue
		}
		select {
		case sub.send <- event:
		default:
			log.Printf("[ws] dropping event for slow subscriber")
		}
	}
}
