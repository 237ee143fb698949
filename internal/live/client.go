package live

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Viewers are read-only.
	maxMessageSize = 512

	// Buffer size for outbound events.
	sendBufferSize = 64
)

// Client is one websocket viewer subscribed to a single match room.
type Client struct {
	ID      string
	MatchID uint
	conn    *websocket.Conn
	Send    chan Event
	hub     *Hub
}

// NewClient creates a new client instance
func NewClient(id string, matchID uint, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:      id,
		MatchID: matchID,
		conn:    conn,
		Send:    make(chan Event, sendBufferSize),
		hub:     hub,
	}
}

// TrySend queues an event without blocking. A false return means the
// client's buffer is full and it should be disconnected.
func (c *Client) TrySend(ev Event) bool {
	select {
	case c.Send <- ev:
		return true
	default:
		return false
	}
}

// ReadPump drains the connection until it closes. Viewers send nothing
// meaningful; the pump exists to process pongs and detect disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("live: client %s unexpected close: %v", c.ID, err)
			}
			return
		}
	}
}

// WritePump pumps events from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				log.Printf("live: client %s write error: %v", c.ID, err)
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
