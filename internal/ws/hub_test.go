package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialSubscriber opens a websocket against the hub and returns the
// client side of the connection.
func dialSubscriber(t *testing.T, hub *Hub, staff bool) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Subscribe(conn, staff)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		count := len(hub.subs)
		hub.mu.RUnlock()
		if count == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("subscribers never reached %d", n)
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	err := conn.ReadJSON(&event)
	assert.NoError(t, err)
	return event
}

func TestPublish_ReachesSubscriber(t *testing.T) {
	hub := NewHub()
	conn := dialSubscriber(t, hub, false)
	waitForSubscribers(t, hub, 1)

	hub.Publish(Event{Type: EventRequestCreated, RequestID: 42})

	event := readEvent(t, conn)
	assert.Equal(t, EventRequestCreated, event.Type)
	assert.Equal(t, uint(42), event.RequestID)
}

func TestPublish_InternalEventSkipsClients(t *testing.T) {
	hub := NewHub()
	clientConn := dialSubscriber(t, hub, false)
	staffConn := dialSubscriber(t, hub, true)
	waitForSubscribers(t, hub, 2)

	hub.Publish(Event{Type: EventCommentAdded, RequestID: 7, Internal: true})
	hub.Publish(Event{Type: EventStatusChanged, RequestID: 7})

	// Staff receives both, in order.
	event := readEvent(t, staffConn)
	assert.Equal(t, EventCommentAdded, event.Type)
	event = readEvent(t, staffConn)
	assert.Equal(t, EventStatusChanged, event.Type)

	// The client subscriber only ever sees the public event.
	event = readEvent(t, clientConn)
	assert.Equal(t, EventStatusChanged, event.Type)
}

func TestPublish_NoSubscribers(t *testing.T) {
	hub := NewHub()
	// Must not block or panic with nobody listening.
	hub.Publish(Event{Type: EventRequestCreated, RequestID: 1})
}
