package notifications

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	sendBufferSize = 64
)

// Hub tracks live websocket connections keyed by user and pushes
// notification events to them. A user may hold several connections at
// once (multiple tabs).
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]map[*connection]struct{}
	upgrader    websocket.Upgrader
	logger      *zap.Logger
	closed      bool
}

type connection struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan Event
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]map[*connection]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// HandleConnection upgrades the request and serves the socket until the
// client disconnects. On upgrade failure the upgrader has already written
// the error response.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &connection{
		userID: userID,
		conn:   ws,
		send:   make(chan Event, sendBufferSize),
	}
	h.register(c)

	go h.writePump(c)
	go h.readPump(c)
}

// Push delivers an event to every live connection of the user. Users
// without an open socket are skipped; the notification row is their
// record of the event.
func (h *Hub) Push(userID uuid.UUID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.connections[userID] {
		select {
		case c.send <- event:
		default:
			// Slow consumer, drop rather than block moderation.
		}
	}
}

// Close shuts down every open connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, conns := range h.connections {
		for c := range conns {
			c.conn.Close()
		}
	}
	h.connections = make(map[uuid.UUID]map[*connection]struct{})
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		c.conn.Close()
		return
	}
	if h.connections[c.userID] == nil {
		h.connections[c.userID] = make(map[*connection]struct{})
	}
	h.connections[c.userID][c] = struct{}{}
	h.logger.Debug("websocket connected", zap.String("user_id", c.userID.String()))
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.connections[c.userID]
	if _, ok := conns[c]; !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.connections, c.userID)
	}
	close(c.send)
	h.logger.Debug("websocket disconnected", zap.String("user_id", c.userID.String()))
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Clients do not send application messages; drain for control frames.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
