package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

const (
	// Time allowed to write a message to a client.
	hubWriteWait = 10 * time.Second

	// Time allowed to read the next pong from a client.
	hubPongWait = 60 * time.Second

	// Ping interval; must be less than hubPongWait.
	hubPingPeriod = 50 * time.Second

	// Per-client outbound buffer. A client that falls this far behind is
	// evicted rather than allowed to block the broadcast.
	hubClientBuffer = 64
)

// wireAlert is the JSON shape sent to WebSocket subscribers.
type wireAlert struct {
	ID       string `json:"id"`
	CIK      int64  `json:"cik"`
	Ticker   string `json:"ticker,omitempty"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	At       string `json:"at"`
}

// Hub broadcasts alerts to WebSocket subscribers. It implements both
// http.Handler (the upgrade endpoint) and Notifier (the delivery channel).
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*hubClient]struct{}
	closed  bool
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*hubClient]struct{}),
	}
}

// Name implements Notifier.
func (h *Hub) Name() string { return "websocket" }

// Send implements Notifier by broadcasting the alert to every subscriber.
func (h *Hub) Send(ctx context.Context, a model.Alert) error {
	payload, err := json.Marshal(wireAlert{
		ID:       a.ID.String(),
		CIK:      a.CIK,
		Ticker:   a.Ticker,
		Kind:     a.Kind,
		Severity: string(a.Severity),
		Message:  a.Message,
		At:       a.At.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow client: evict rather than block.
			h.logger.Warn("evicting slow websocket client")
			delete(h.clients, c)
			close(c.send)
		}
	}
	return nil
}

// Subscribers returns the current client count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection and registers the subscriber.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &hubClient{
		conn: conn,
		send: make(chan []byte, hubClientBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("websocket client connected", "subscribers", n)

	go h.writePump(c)
	go h.readPump(c)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// writePump drains the client's send channel and keeps the connection
// alive with pings.
func (h *Hub) writePump(c *hubClient) {
	ticker := time.NewTicker(hubPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.drop(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(c)
				return
			}
		}
	}
}

// readPump discards inbound frames and notices disconnects.
func (h *Hub) readPump(c *hubClient) {
	defer func() {
		h.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(hubPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(hubPongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// drop unregisters a client if still registered.
func (h *Hub) drop(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

var _ Notifier = (*Hub)(nil)
