package stream

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Bridge relays stock-change notifications between instances over a redis
// channel so that every replica's subscribers hear about mutations made on
// any replica. With no redis client it degrades to single-instance operation.
type Bridge struct {
	hub        *Hub
	client     *redis.Client
	channel    string
	instanceID string
	onRemote   func()
	logger     *zap.Logger

	cancel context.CancelFunc
}

// NewBridge builds a bridge for the hub. onRemote runs once per message from
// another instance, before the local re-broadcast (cache invalidation hook).
func NewBridge(hub *Hub, client *redis.Client, channel string, onRemote func(), logger *zap.Logger) *Bridge {
	return &Bridge{
		hub:        hub,
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
		onRemote:   onRemote,
		logger:     logger,
	}
}

// Start begins relaying messages from other instances into the local hub.
func (b *Bridge) Start(ctx context.Context) {
	if b.client == nil {
		b.logger.Warn("redis not configured; stock events stay instance-local")
		return
	}

	ctx, b.cancel = context.WithCancel(ctx)
	pubsub := b.client.Subscribe(ctx, b.channel)

	go func() {
		defer pubsub.Close() //nolint:errcheck
		for {
			select {
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				b.handle(msg.Payload)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// PublishStockChanged announces a local stock change to the other instances.
func (b *Bridge) PublishStockChanged(ctx context.Context) {
	if b.client == nil {
		return
	}
	payload := b.instanceID + "|" + time.Now().UTC().Format(time.RFC3339)
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.logger.Warn("failed to publish stock event", zap.Error(err))
	}
}

// Stop halts the relay goroutine.
func (b *Bridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *Bridge) handle(payload string) {
	parts := strings.SplitN(payload, "|", 2)
	if len(parts) != 2 {
		return
	}
	// Local mutations already notified the local hub directly.
	if parts[0] == b.instanceID {
		return
	}
	if b.onRemote != nil {
		b.onRemote()
	}
	b.hub.BroadcastStockChanged()
}
