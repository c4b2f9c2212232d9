// Package ws implements the WebSocket adapter for real-time client
// notifications.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// Envelope is the frame sent to clients for every event.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// clientMessage is the frame clients send to the hub.
type clientMessage struct {
	Type   string `json:"type"`
	TaskID string `json:"taskId,omitempty"`
}

// conn wraps a single WebSocket connection.
type conn struct {
	ws     *websocket.Conn
	cancel context.CancelFunc

	// writeMu serializes writes; the broadcast path and the read-loop acks
	// share the connection.
	writeMu sync.Mutex
}

// Hub manages all active WebSocket connections and broadcasts envelopes.
type Hub struct {
	mu    sync.RWMutex
	conns map[*conn]struct{}
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*conn]struct{}),
	}
}

// HandleWS upgrades the request to a WebSocket connection, sends the welcome
// envelope, and starts the per-client read loop.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	c := &conn{ws: ws, cancel: cancel}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	slog.Info("websocket connected", "remote", r.RemoteAddr)

	c.send(ctx, Envelope{
		Type:      "connected",
		Data:      json.RawMessage(`{"message":"connected to lexgrid orchestrator"}`),
		Timestamp: time.Now().UTC(),
	})

	go h.readLoop(ctx, c)
}

// readLoop consumes inbound client frames until disconnect. Known kinds are
// acknowledged; everything else is logged and ignored.
func (h *Hub) readLoop(ctx context.Context, c *conn) {
	defer func() {
		h.remove(c)
		_ = c.ws.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, data, err := c.ws.Read(ctx)
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("websocket inbound not json", "error", err)
			continue
		}

		switch msg.Type {
		case "ping":
			c.send(ctx, Envelope{Type: "pong", Timestamp: time.Now().UTC()})
		case "subscribe_task":
			ack, _ := json.Marshal(map[string]string{"taskId": msg.TaskID})
			c.send(ctx, Envelope{Type: "subscribed", Data: ack, Timestamp: time.Now().UTC()})
		default:
			slog.Debug("websocket inbound ignored", "type", msg.Type)
		}
	}
}

// Broadcast sends an envelope to all connected clients.
func (h *Hub) Broadcast(ctx context.Context, env Envelope) {
	h.mu.RLock()
	conns := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if !c.send(ctx, env) {
			go h.remove(c)
		}
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// send writes one envelope; reports false when the connection is dead.
func (c *conn) send(ctx context.Context, env Envelope) bool {
	data, err := json.Marshal(env)
	if err != nil {
		slog.Error("websocket marshal failed", "error", err)
		return true
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("websocket write failed", "error", err)
		return false
	}
	return true
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		c.cancel()
		delete(h.conns, c)
		slog.Info("websocket disconnected")
	}
}
