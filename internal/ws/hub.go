// Package ws pushes live flight-status updates to connected clients.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/smartwings/booking-system/internal/models"
)

// MessageTypeStatusUpdated is the one message type the status board
// emits.
const MessageTypeStatusUpdated = "status_updated"

// Message is a status broadcast frame.
type Message struct {
	Type      string                `json:"type"`
	Statuses  []models.FlightStatus `json:"statuses"`
	Timestamp int64                 `json:"timestamp"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The status board is public; cross-origin pages may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one subscribed connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans status updates out to every subscribed client.
type Hub struct {
	log logrus.FieldLogger

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates an idle hub; call Run to start its loop.
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
		clients:    make(map[*Client]bool),
	}
}

// Run drives the hub's register/unregister/broadcast loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.WithField("clients", h.ClientCount()).Debug("status client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.log.WithError(err).Error("failed to marshal status message")
				continue
			}

			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow consumer; drop it rather than block the board.
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastStatuses pushes the current board to every client.
func (h *Hub) BroadcastStatuses(statuses []models.FlightStatus) {
	h.broadcast <- &Message{
		Type:      MessageTypeStatusUpdated,
		Statuses:  statuses,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ClientCount returns the number of subscribed clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and subscribes the connection to
// status updates.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
