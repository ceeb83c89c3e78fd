package notification

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// client owns one websocket connection. All writes go through send and
// are drained by a single writePump; gorilla/websocket allows only one
// concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub holds one websocket connection per back-office user and fans out
// freshly created notifications to everyone watching.
type Hub struct {
	connections map[int64]*client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*client),
	}
}

// Register adopts the connection and starts its write pump. A second
// registration for the same user replaces the first.
func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	if old, exists := h.connections[userID]; exists && old != nil {
		close(old.send)
	}
	h.connections[userID] = c
	h.mutex.Unlock()

	go h.writePump(userID, c)
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.connections[userID]; exists && c != nil {
		close(c.send)
		delete(h.connections, userID)
	}
}

// drop removes a specific client, but only if it is still the one
// registered for the user; a replaced connection must not evict its
// successor.
func (h *Hub) drop(userID int64, c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if current, exists := h.connections[userID]; exists && current == c {
		close(c.send)
		delete(h.connections, userID)
	}
}

// Broadcast queues a message for every connected user. The send is
// non-blocking: a client whose buffer is full misses the message
// instead of stalling the caller.
func (h *Hub) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, c := range h.connections {
		select {
		case c.send <- data:
		default:
		}
	}
}

// writePump is the single writer for one connection. It drains the
// send channel, pings on idle and closes the socket on the way out.
func (h *Hub) writePump(userID int64, c *client) {
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
				h.drop(userID, c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(userID, c)
				return
			}
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.connections {
		close(c.send)
		delete(h.connections, userID)
	}
}
