package stream

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event names pushed over the update stream.
const (
	EventConnected   = "connected"
	EventStockUpdate = "stock-update"
	EventHeartbeat   = "heartbeat"
)

// Event is one named server-push message with a string payload.
type Event struct {
	Name string
	Data string
}

// Subscription is the handle held by one live client connection. Events
// arrive on C in the order they were broadcast; C is closed when the
// subscriber is pruned or the hub shuts down.
type Subscription struct {
	ID string
	C  <-chan Event

	ch   chan Event
	once sync.Once
}

func (s *Subscription) close() {
	s.once.Do(func() {
		close(s.ch)
	})
}

// Hub fans stock-change and heartbeat events out to every subscribed
// connection. Subscribe, BroadcastStockChanged and the heartbeat ticker all
// run concurrently; a subscriber that cannot accept an event is treated as
// dead and removed after the delivery pass without disturbing the rest.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscription

	heartbeatEvery time.Duration
	buffer         int
	now            func() time.Time
	logger         *zap.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHub builds a hub and starts its heartbeat task.
func NewHub(heartbeatEvery time.Duration, buffer int, logger *zap.Logger) *Hub {
	return newHub(heartbeatEvery, buffer, logger, time.Now)
}

func newHub(heartbeatEvery time.Duration, buffer int, logger *zap.Logger, now func() time.Time) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	h := &Hub{
		subscribers:    make(map[string]*Subscription),
		heartbeatEvery: heartbeatEvery,
		buffer:         buffer,
		now:            now,
		logger:         logger,
		stopCh:         make(chan struct{}),
	}
	go h.heartbeatLoop()
	return h
}

// Subscribe registers a new connection and immediately queues a connected
// event for it.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Event, h.buffer)
	sub := &Subscription{
		ID: uuid.NewString(),
		C:  ch,
		ch: ch,
	}

	// Queued before registration so connected is always the first event and
	// cannot race a concurrent Close of the channel.
	sub.ch <- Event{Name: EventConnected, Data: h.timestamp()}

	h.mu.Lock()
	h.subscribers[sub.ID] = sub
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes a connection. Unknown ids are a no-op.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		sub.close()
	}
}

// BroadcastStockChanged pushes a stock-update event to every live connection.
// Called by the mutation path whenever a persisted ingredient's stock flag
// actually changed.
func (h *Hub) BroadcastStockChanged() {
	h.broadcast(Event{Name: EventStockUpdate, Data: h.timestamp()})
}

// SubscriberCount returns the size of the live connection set.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close stops the heartbeat and closes every subscription.
func (h *Hub) Close() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
	})

	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs = append(subs, sub)
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

func (h *Hub) broadcast(ev Event) {
	// Sends happen under the read lock so Unsubscribe (which closes the
	// channel under the write lock) cannot race a send. The sends are
	// non-blocking, a full channel marks the subscriber dead.
	h.mu.RLock()
	var dead []string
	for id, sub := range h.subscribers {
		select {
		case sub.ch <- ev:
		default:
			dead = append(dead, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range dead {
		h.Unsubscribe(id)
		if h.logger != nil {
			h.logger.Debug("pruned dead stream subscriber", zap.String("subscriber_id", id), zap.String("event", ev.Name))
		}
	}
}

func (h *Hub) heartbeatLoop() {
	ticker := time.NewTicker(h.heartbeatEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.broadcast(Event{Name: EventHeartbeat, Data: h.timestamp()})
		case <-h.stopCh:
			return
		}
	}
}

func (h *Hub) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}
