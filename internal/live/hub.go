package live

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hub maintains per-match rooms of websocket viewers and fans committed
// scoring events out to them. It implements scoring.Publisher.
type Hub struct {
	// instanceID distinguishes this process's events on the relay channel.
	instanceID string

	rooms   map[uint]map[*Client]bool
	roomsMu sync.RWMutex

	broadcast  chan Event
	register   chan *Client
	unregister chan *Client

	relay *Relay
}

// NewHub creates a hub. relay may be nil when cross-instance fan-out is
// disabled.
func NewHub(relay *Relay) *Hub {
	return &Hub{
		instanceID: uuid.NewString(),
		rooms:      make(map[uint]map[*Client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		relay:      relay,
	}
}

// Run starts the hub's main loop and, when configured, the relay consumer.
func (h *Hub) Run(ctx context.Context) {
	if h.relay != nil {
		go h.relay.Subscribe(ctx, h.instanceID, h.deliver)
	}

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

// Register adds a client to its match room.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Publish implements scoring.Publisher: it queues the event for local
// delivery and, when a relay is configured, mirrors it to other instances.
// Publishing never blocks the scoring commit.
func (h *Hub) Publish(matchID uint, event string, payload interface{}) {
	ev := Event{
		Type:      event,
		MatchID:   matchID,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case h.broadcast <- ev:
	default:
		log.Printf("live: broadcast buffer full, dropping %s for match %d", event, matchID)
	}

	if h.relay != nil {
		h.relay.Publish(h.instanceID, ev)
	}
}

func (h *Hub) registerClient(c *Client) {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()

	room, ok := h.rooms[c.MatchID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[c.MatchID] = room
	}
	room[c] = true

	log.Printf("live: client %s joined match %d (%d viewers)", c.ID, c.MatchID, len(room))
}

func (h *Hub) unregisterClient(c *Client) {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()

	room, ok := h.rooms[c.MatchID]
	if !ok {
		return
	}
	if _, ok := room[c]; ok {
		delete(room, c)
		close(c.Send)
		if len(room) == 0 {
			delete(h.rooms, c.MatchID)
		}
		log.Printf("live: client %s left match %d (%d viewers)", c.ID, c.MatchID, len(room))
	}
}

// deliver fans an event out to the match's room. Slow clients with a full
// send buffer are disconnected; they resynchronize on reconnect via the
// join snapshot.
func (h *Hub) deliver(ev Event) {
	h.roomsMu.RLock()
	clients := make([]*Client, 0, len(h.rooms[ev.MatchID]))
	for c := range h.rooms[ev.MatchID] {
		clients = append(clients, c)
	}
	h.roomsMu.RUnlock()

	for _, c := range clients {
		if !c.TrySend(ev) {
			log.Printf("live: client %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

// RoomSize returns the number of viewers in a match room.
func (h *Hub) RoomSize(matchID uint) int {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()
	return len(h.rooms[matchID])
}

func (h *Hub) shutdown() {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()

	for matchID, room := range h.rooms {
		for c := range room {
			close(c.Send)
			delete(room, c)
		}
		delete(h.rooms, matchID)
	}
}
