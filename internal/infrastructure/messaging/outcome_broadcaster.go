package messaging

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks happen in the CORS middleware before the upgrade.
		return true
	},
}

// Client is one websocket connection owned by a dashboard session.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	tenantID  string
	sessionID string
}

// Hub is the concrete OutcomeBroadcaster. Clients are grouped per tenant;
// events target either one session or the whole tenant.
type Hub struct {
	clients map[string]map[*Client]bool
	mu      sync.RWMutex
	logger  *logging.ChanneledLogger
	closed  bool
}

// NewHub creates a new outcome broadcast hub
func NewHub(logger *logging.ChanneledLogger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
		logger:  logger,
	}
}

// HandleConnection upgrades the HTTP request and registers the client. Blocks
// until the connection drops.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request, tenantID, sessionID string) error {
	h.mu.RLock()
	count := len(h.clients[tenantID])
	h.mu.RUnlock()
	if count >= config.WSMaxClientsPerTenant {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return nil
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		conn:      conn,
		send:      make(chan []byte, 16),
		tenantID:  tenantID,
		sessionID: sessionID,
	}

	h.register(client)
	h.logger.WS().Debug("Websocket client connected", "tenantId", tenantID, "sessionId", sessionID)

	go client.writePump()
	client.readPump(h)

	return nil
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client.tenantID] == nil {
		h.clients[client.tenantID] = make(map[*Client]bool)
	}
	h.clients[client.tenantID][client] = true
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if tenantClients, ok := h.clients[client.tenantID]; ok {
		if _, exists := tenantClients[client]; exists {
			delete(tenantClients, client)
			close(client.send)
			if len(tenantClients) == 0 {
				delete(h.clients, client.tenantID)
			}
		}
	}
}

// BroadcastOutcome pushes an event to the originating session and any other
// session watching the same tenant.
func (h *Hub) BroadcastOutcome(tenantID, sessionID string, event OutcomeEvent) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.WS().Error("Failed to marshal outcome event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[tenantID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop the event rather than block the batch path.
			h.logger.WS().Warn("Dropped outcome event for slow client",
				"tenantId", tenantID, "sessionId", client.sessionID)
		}
	}
}

// ClientCount returns the number of connected clients for a tenant
func (h *Hub) ClientCount(tenantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[tenantID])
}

// Shutdown closes all client connections
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for tenantID, tenantClients := range h.clients {
		for client := range tenantClients {
			close(client.send)
			client.conn.Close()
		}
		delete(h.clients, tenantID)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(config.WSPongTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WSWriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WSWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(config.WSPongTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.WSPongTimeout))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
