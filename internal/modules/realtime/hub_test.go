package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Hub, string) {
	t.Helper()
	log := logger.Discard()

	hub := NewHub(log)
	r := gin.New()
	NewHandler(hub, nil).RegisterRoutes(r.Group("/api/v1"))

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/rooms"
}

func dial(t *testing.T, hub *Hub, url string, want int) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return hub.Count() == want }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestHub_BroadcastsAvailability(t *testing.T) {
	hub, url := newTestServer(t)
	conn := dial(t, hub, url, 1)

	hub.RoomAvailabilityChanged(7, "sea-view", false)

	ev := readEvent(t, conn)
	assert.Equal(t, Event{Type: EventRoomAvailability, RoomID: 7, Slug: "sea-view", Existing: false}, ev)
}

func TestHub_SlugFilter(t *testing.T) {
	hub, url := newTestServer(t)
	filtered := dial(t, hub, url+"?slugs=garden", 1)
	all := dial(t, hub, url, 2)

	hub.RoomAvailabilityChanged(1, "sea-view", true)
	hub.RoomAvailabilityChanged(2, "garden", false)

	assert.Equal(t, "sea-view", readEvent(t, all).Slug)
	assert.Equal(t, "garden", readEvent(t, all).Slug)
	assert.Equal(t, "garden", readEvent(t, filtered).Slug)
}

func TestHub_Subscribe(t *testing.T) {
	hub, url := newTestServer(t)
	conn := dial(t, hub, url+"?slugs=garden", 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe", "slug": "sea-view"}))
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for c := range hub.connections {
			return c.slugs["sea-view"]
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	hub.RoomAvailabilityChanged(1, "sea-view", true)
	assert.Equal(t, "sea-view", readEvent(t, conn).Slug)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, url := newTestServer(t)
	conn := dial(t, hub, url, 1)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)

	hub.RoomAvailabilityChanged(1, "sea-view", true)
}
