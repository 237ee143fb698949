package live

import (
	"context"
	"testing"
	"time"

	"github.com/cricboard/cricboard/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubRoomMembership(t *testing.T) {
	hub := startHub(t)

	a1 := NewClient("a1", 1, nil, hub)
	a2 := NewClient("a2", 1, nil, hub)
	b1 := NewClient("b1", 2, nil, hub)

	hub.Register(a1)
	hub.Register(a2)
	hub.Register(b1)

	require.Eventually(t, func() bool {
		return hub.RoomSize(1) == 2 && hub.RoomSize(2) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Unregister(a1)
	require.Eventually(t, func() bool {
		return hub.RoomSize(1) == 1
	}, time.Second, 10*time.Millisecond)

	// Unregistering closes the client's send channel.
	_, open := <-a1.Send
	assert.False(t, open)
}

func TestHubDeliversOnlyToMatchRoom(t *testing.T) {
	hub := startHub(t)

	viewer := NewClient("viewer", 1, nil, hub)
	other := NewClient("other", 2, nil, hub)
	hub.Register(viewer)
	hub.Register(other)

	require.Eventually(t, func() bool {
		return hub.RoomSize(1) == 1 && hub.RoomSize(2) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(1, scoring.EventScoreUpdated, map[string]int{"runs": 4})

	select {
	case ev := <-viewer.Send:
		assert.Equal(t, scoring.EventScoreUpdated, ev.Type)
		assert.Equal(t, uint(1), ev.MatchID)
		assert.False(t, ev.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("viewer in the match room never received the event")
	}

	select {
	case ev := <-other.Send:
		t.Fatalf("viewer of another match received %s", ev.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDisconnectsSlowClient(t *testing.T) {
	hub := startHub(t)

	slow := NewClient("slow", 1, nil, hub)
	hub.Register(slow)
	require.Eventually(t, func() bool {
		return hub.RoomSize(1) == 1
	}, time.Second, 10*time.Millisecond)

	// Fill the send buffer so the next delivery cannot be queued.
	for i := 0; i < sendBufferSize; i++ {
		require.True(t, slow.TrySend(Event{Type: "filler"}))
	}
	require.False(t, slow.TrySend(Event{Type: "overflow"}))

	hub.Publish(1, scoring.EventScoreUpdated, nil)

	require.Eventually(t, func() bool {
		return hub.RoomSize(1) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSnapshotEvent(t *testing.T) {
	snap := &scoring.MatchSnapshot{}
	ev := SnapshotEvent(42, snap)

	assert.Equal(t, EventSnapshot, ev.Type)
	assert.Equal(t, uint(42), ev.MatchID)
	assert.Same(t, snap, ev.Payload)
	assert.False(t, ev.Timestamp.IsZero())
}
