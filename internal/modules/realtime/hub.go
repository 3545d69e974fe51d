// Package realtime pushes room availability changes to connected browsers.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const EventRoomAvailability = "room_availability"

// Event is a message pushed to clients.
type Event struct {
	Type     string `json:"type"`
	RoomID   int64  `json:"room_id"`
	Slug     string `json:"slug"`
	Existing bool   `json:"existing"`
}

// connection is one websocket client. An empty slugs set means the client
// follows every room.
type connection struct {
	conn  *websocket.Conn
	send  chan []byte
	slugs map[string]bool
}

// Hub manages all active WebSocket connections
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	log         *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		connections: make(map[*connection]struct{}),
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// RoomAvailabilityChanged broadcasts the new availability flag of a room.
func (h *Hub) RoomAvailabilityChanged(roomID int64, slug string, existing bool) {
	h.Broadcast(Event{Type: EventRoomAvailability, RoomID: roomID, Slug: slug, Existing: existing})
}

// Broadcast delivers ev to every interested client. Slow clients miss it.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if len(c.slugs) > 0 && !c.slugs[ev.Slug] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.WithField("slug", ev.Slug).Debug("realtime client too slow, event dropped")
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// ServeWS registers conn and runs its pumps until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, slugs []string) {
	c := &connection{
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		slugs: make(map[string]bool),
	}
	for _, s := range slugs {
		if s != "" {
			c.slugs[s] = true
		}
	}

	h.register(c)
	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var in struct {
			Type string `json:"type"`
			Slug string `json:"slug"`
		}
		if err := json.Unmarshal(msg, &in); err != nil || in.Slug == "" {
			continue
		}

		h.mu.Lock()
		switch in.Type {
		case "subscribe":
			c.slugs[in.Slug] = true
		case "unsubscribe":
			delete(c.slugs, in.Slug)
		}
		h.mu.Unlock()
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close drops every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}
