package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"talentboard/internal/domain"
)

const sendBufferSize = 256

// Client is one live websocket connection. Send is buffered; a full buffer
// means the event is dropped for that connection rather than blocking the
// writer.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub is the registry of live connections, addressable by user ID and by
// role group. It is not a source of truth: delivery is at-most-once and a
// user with zero connections is a silent no-op. Clients reconcile against
// the durable store after reconnecting.
type Hub struct {
	mu    sync.RWMutex
	users map[uuid.UUID]map[*websocket.Conn]*Client
	roles map[domain.UserRole]map[*websocket.Conn]*Client
}

func NewHub() *Hub {
	return &Hub{
		users: make(map[uuid.UUID]map[*websocket.Conn]*Client),
		roles: make(map[domain.UserRole]map[*websocket.Conn]*Client),
	}
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Register adds a connection under the user's ID and role group. Multiple
// simultaneous connections per user are legal; each gets its own client.
func (h *Hub) Register(userID uuid.UUID, role domain.UserRole, conn *websocket.Conn) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
	}

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[*websocket.Conn]*Client)
	}
	h.users[userID][conn] = client

	if _, ok := h.roles[role]; !ok {
		h.roles[role] = make(map[*websocket.Conn]*Client)
	}
	h.roles[role][conn] = client

	return client
}

func (h *Hub) Unregister(userID uuid.UUID, role domain.UserRole, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.users[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.users, userID)
		}
	}

	if clients, ok := h.roles[role]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.roles, role)
		}
	}
}

// PushToUser delivers to every live connection of one user. No connection,
// no delivery, no error.
func (h *Hub) PushToUser(userID uuid.UUID, event string, data any) {
	payload, ok := marshal(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.users[userID] {
		client.trySend(payload)
	}
}

// PushToRole delivers to every connection in a role group.
func (h *Hub) PushToRole(role domain.UserRole, event string, data any) {
	payload, ok := marshal(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.roles[role] {
		client.trySend(payload)
	}
}

// Broadcast delivers to every live connection.
func (h *Hub) Broadcast(event string, data any) {
	payload, ok := marshal(event, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.users {
		for _, client := range clients {
			client.trySend(payload)
		}
	}
}

// ConnectionCount reports the number of live connections for a user.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

func (c *Client) trySend(payload []byte) {
	select {
	case c.Send <- payload:
	default:
		// Slow consumer; drop rather than block the write path.
	}
}

// WritePump drains the send buffer onto the wire. It exits when Send is
// closed by Unregister or when the connection breaks.
func (c *Client) WritePump() {
	defer func() {
		c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		c.Conn.Close()
	}()
	for payload := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
}

func marshal(event string, data any) ([]byte, bool) {
	payload, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("ws: failed to marshal %s event: %v", event, err)
		return nil, false
	}
	return payload, true
}
