package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/chachabrian/delivery-backend/internal/logger"
	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/gorilla/websocket"
)

// Subscriber roles accepted by the websocket endpoint.
const (
	RoleUser  = "user"
	RoleRider = "rider"
)

const (
	EventShipmentCreated = "shipment.created"

	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketMessage is the envelope for every pushed event.
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one websocket connection belonging to a user or rider.
type Client struct {
	ID   uint
	Role string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

// Hub tracks connected clients and pushes shipment events to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			logger.Log.Infow("websocket client connected", "id", client.ID, "role", client.Role)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			logger.Log.Infow("websocket client disconnected", "id", client.ID, "role", client.Role)
		}
	}
}

// Register attaches client. It reports false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister detaches client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ConnectedClients returns the number of connected clients.
func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// ShipmentCreated pushes the shipment to its sender, its receiver and every rider.
func (h *Hub) ShipmentCreated(_ context.Context, shipment models.Shipment) {
	data, err := json.Marshal(WebSocketMessage{Type: EventShipmentCreated, Data: shipment})
	if err != nil {
		logger.Log.Errorw("failed to marshal shipment event", "shipment_id", shipment.ShipmentID, "error", err)
		return
	}

	h.broadcast(data, func(c *Client) bool {
		if c.Role == RoleRider {
			return true
		}
		return c.Role == RoleUser && (c.ID == shipment.SenderID || c.ID == shipment.ReceiverID)
	})
}

// broadcast queues message for matching clients, dropping clients whose buffer is full.
func (h *Hub) broadcast(message []byte, match func(*Client) bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if !match(client) {
			continue
		}
		select {
		case client.Send <- message:
		default:
			logger.Log.Warnw("dropping slow websocket client", "id", client.ID, "role", client.Role)
			delete(h.clients, client)
			close(client.Send)
		}
	}
}

// HandleWebSocket upgrades the request and attaches the connection to hub.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, id uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:   id,
		Role: role,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}

	if !hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so close frames are noticed.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warnw("websocket read error", "id", c.ID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Log.Warnw("websocket write error", "id", c.ID, "error", err)
			return
		}
	}

	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
