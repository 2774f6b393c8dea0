package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHub(t *testing.T, buffer int) *Hub {
	t.Helper()
	hub := NewHub(time.Hour, buffer, zap.NewNop())
	t.Cleanup(hub.Close)
	return hub
}

func drain(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.C:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubSubscribeSendsConnectedEvent(t *testing.T) {
	hub := newTestHub(t, 4)

	sub := hub.Subscribe()
	require.NotEmpty(t, sub.ID)
	assert.Equal(t, 1, hub.SubscriberCount())

	ev := drain(t, sub)
	assert.Equal(t, EventConnected, ev.Name)
	assert.NotEmpty(t, ev.Data)
}

func TestHubBroadcastReachesAllSubscribers(t *testing.T) {
	hub := newTestHub(t, 4)

	first := hub.Subscribe()
	second := hub.Subscribe()
	drain(t, first)
	drain(t, second)

	hub.BroadcastStockChanged()

	assert.Equal(t, EventStockUpdate, drain(t, first).Name)
	assert.Equal(t, EventStockUpdate, drain(t, second).Name)
}

func TestHubBroadcastPrunesFailingSubscriberAndDeliversToSurvivor(t *testing.T) {
	// Buffer of one: the connected event fills the failing subscriber's
	// channel, so the next send to it fails.
	hub := newTestHub(t, 1)

	failing := hub.Subscribe()
	survivor := hub.Subscribe()
	drain(t, survivor) // connected; failing keeps its connected event queued

	hub.BroadcastStockChanged()

	assert.Equal(t, EventStockUpdate, drain(t, survivor).Name, "survivor still receives the broadcast")
	assert.Equal(t, 1, hub.SubscriberCount(), "failing subscriber removed from the live set")

	// The failing subscriber's channel is closed after its queued events.
	assert.Equal(t, EventConnected, drain(t, failing).Name)
	_, open := <-failing.C
	assert.False(t, open)
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	hub := newTestHub(t, 4)
	sub := hub.Subscribe()

	hub.Unsubscribe(sub.ID)
	hub.Unsubscribe(sub.ID)
	hub.Unsubscribe("unknown")

	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHubEventOrderPerConnection(t *testing.T) {
	hub := newTestHub(t, 8)
	sub := hub.Subscribe()
	drain(t, sub)

	hub.BroadcastStockChanged()
	hub.broadcast(Event{Name: EventHeartbeat, Data: "hb"})
	hub.BroadcastStockChanged()

	assert.Equal(t, EventStockUpdate, drain(t, sub).Name)
	assert.Equal(t, EventHeartbeat, drain(t, sub).Name)
	assert.Equal(t, EventStockUpdate, drain(t, sub).Name)
}

func TestHubHeartbeatBroadcasts(t *testing.T) {
	hub := newHub(25*time.Millisecond, 4, zap.NewNop(), time.Now)
	defer hub.Close()

	sub := hub.Subscribe()
	drain(t, sub)

	ev := drain(t, sub)
	assert.Equal(t, EventHeartbeat, ev.Name)
}

func TestHubCloseClosesSubscriptions(t *testing.T) {
	hub := NewHub(time.Hour, 4, zap.NewNop())
	sub := hub.Subscribe()
	drain(t, sub)

	hub.Close()

	_, open := <-sub.C
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHubConcurrentSubscribeAndBroadcast(t *testing.T) {
	hub := newTestHub(t, 64)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			hub.BroadcastStockChanged()
		}
	}()
	for i := 0; i < 50; i++ {
		sub := hub.Subscribe()
		if i%2 == 0 {
			hub.Unsubscribe(sub.ID)
		}
	}
	<-done

	assert.Equal(t, 25, hub.SubscriberCount())
}
