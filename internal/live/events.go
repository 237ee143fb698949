package live

import "time"

// EventSnapshot is sent to a client immediately after it joins a match
// room; delta updates assume the recipient already holds prior state.
const EventSnapshot = "snapshot"

// Event is the envelope for every message pushed to match subscribers.
type Event struct {
	Type      string      `json:"type"`
	MatchID   uint        `json:"match_id"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
