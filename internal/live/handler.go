package live

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cricboard/cricboard/internal/scoring"
	"github.com/cricboard/cricboard/pkg/responses"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Viewers are read-only and carry no credentials; the score stream is
	// public, so cross-origin subscriptions are allowed.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades GET /ws/matches/:id to a websocket subscription. The
// client joins the match room and receives a full snapshot before any
// incremental update.
func ServeWS(hub *Hub, service *scoring.ScoringService) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			responses.BadRequest(c, "Invalid match ID")
			return
		}

		snap, err := service.Snapshot(uint(matchID))
		if err != nil {
			if errors.Is(err, scoring.ErrMatchNotFound) {
				responses.NotFound(c, "Match")
				return
			}
			responses.InternalServerError(c, "Failed to load match state")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("live: upgrade failed: %v", err)
			return
		}

		client := NewClient(uuid.NewString(), uint(matchID), conn, hub)
		hub.Register(client)

		// Snapshot first: delta events assume the viewer holds prior state.
		client.TrySend(SnapshotEvent(uint(matchID), snap))

		go client.WritePump()
		go client.ReadPump()
	}
}

// SnapshotEvent builds the join snapshot envelope.
func SnapshotEvent(matchID uint, snap *scoring.MatchSnapshot) Event {
	return Event{
		Type:      EventSnapshot,
		MatchID:   matchID,
		Payload:   snap,
		Timestamp: time.Now(),
	}
}
