package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event names emitted on entity changes.
const (
	CategoryAdded   = "categoryAdded"
	CategoryUpdated = "categoryUpdated"
	CategoryDeleted = "categoryDeleted"
	VideoAdded      = "videoAdded"
	VideoUpdated    = "videoUpdated"
	VideoDeleted    = "videoDeleted"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans entity-change events out to every connected client. Delivery is
// fire and forget: no replay for late joiners, slow clients get dropped.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			logrus.WithField("clients", len(h.clients)).Info("websocket client connected")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				logrus.WithField("clients", len(h.clients)).Info("websocket client disconnected")
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Emit broadcasts a named event to all connected clients.
func (h *Hub) Emit(event string, data interface{}) {
	message, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("failed to encode event")
		return
	}
	h.broadcast <- message
}

// HandleWS upgrades the request and registers the connection with the hub.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- cl

	go cl.writePump()
	go cl.readPump()
}

func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	// Hub closed the channel; tell the peer we are going away.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound messages; the channel is server-to-client only.
// Reading is still required to notice disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
