package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

// Event is one message pushed to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Event types on the wire.
const (
	EventTypeShow = "show"
	EventTypeDeck = "deck"
)

// Hub fans events out to every connected WebSocket client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     *slog.Logger
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

// Broadcast sends an event to all connected clients. Clients with full
// send buffers drop the message rather than block the editor.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("client send buffer full, dropping event", "client", c.id)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// serve owns one connection: registers it, pumps outgoing events and
// pings, and discards inbound frames until the peer goes away.
func (h *Hub) serve(ctx context.Context, conn *websocket.Conn, welcome []Event) {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.Info("remote client connected", "client", c.id)

	for _, ev := range welcome {
		if data, err := json.Marshal(ev); err == nil {
			c.send <- data
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		c.readPump(ctx)
	}()
	c.writePump(ctx)

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	cancel()
	conn.Close(websocket.StatusNormalClosure, "")
	h.log.Info("remote client disconnected", "client", c.id)
}

// readPump drains inbound frames; remote clients control the show via the
// REST routes, not the socket.
func (c *client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(4 * 1024)
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

func (c *client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
