package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType is the type of a stream message.
type MessageType string

const (
	MessageSnapshot MessageType = "snapshot"
	MessageFailure  MessageType = "failure"
)

// Message is sent to WebSocket clients.
type Message struct {
	Type     MessageType `json:"type"`
	Snapshot *Snapshot   `json:"snapshot,omitempty"`
	Failure  *Failure    `json:"failure,omitempty"`
}

// defaultWriteWait bounds each write so a stalled client cannot hold up the
// model goroutine.
const defaultWriteWait = 2 * time.Second

// client serializes writes to one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte, wait time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(wait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages WebSocket connections of devtools clients.
type Hub struct {
	clients   map[*client]bool
	mu        sync.RWMutex
	upgrader  websocket.Upgrader
	logger    *slog.Logger
	writeWait time.Duration
}

// NewHub creates a new hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:   make(map[*client]bool),
		logger:    logger,
		writeWait: defaultWriteWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection, sends initial (if not nil) and
// keeps the client registered until it disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request, initial *Message) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[c] = true
	wait := h.writeWait
	h.mu.Unlock()

	if initial != nil {
		if data, err := json.Marshal(initial); err == nil {
			if err := c.write(data, wait); err != nil {
				h.remove(c)
				return
			}
		}
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
}

// Broadcast sends msg to all clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode inspector message", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	wait := h.writeWait
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data, wait); err != nil {
			h.logger.Debug("dropping inspector client", "error", err)
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}
