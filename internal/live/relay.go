package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// relayEnvelope wraps an event with its origin instance so subscribers can
// skip events they published themselves.
type relayEnvelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// Relay mirrors hub events over Redis Pub/Sub so viewers connected to other
// instances see the same stream. Channels are keyed per match.
type Relay struct {
	rdb *redis.Client
}

// NewRelay connects to Redis. It returns nil when no address is configured,
// which disables cross-instance fan-out.
func NewRelay(addr, password string, db int) *Relay {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Relay{rdb: rdb}
}

func channelForMatch(matchID uint) string {
	return fmt.Sprintf("match:%d", matchID)
}

// Publish mirrors one event to the match's relay channel. Failures are
// logged and dropped; the local commit is already durable.
func (r *Relay) Publish(origin string, ev Event) {
	payload, err := json.Marshal(relayEnvelope{Origin: origin, Event: ev})
	if err != nil {
		log.Printf("live: relay marshal error: %v", err)
		return
	}
	if err := r.rdb.Publish(context.Background(), channelForMatch(ev.MatchID), payload).Err(); err != nil {
		log.Printf("live: relay publish error: %v", err)
	}
}

// Subscribe consumes all match channels and hands foreign events to deliver.
// It returns when the context is cancelled.
func (r *Relay) Subscribe(ctx context.Context, instanceID string, deliver func(Event)) {
	sub := r.rdb.PSubscribe(ctx, "match:*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env relayEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("live: relay decode error: %v", err)
				continue
			}
			if env.Origin == instanceID {
				continue
			}
			deliver(env.Event)
		}
	}
}

// Close releases the Redis connection.
func (r *Relay) Close() error {
	return r.rdb.Close()
}
