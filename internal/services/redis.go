package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chachabrian/delivery-backend/internal/logger"
	"github.com/chachabrian/delivery-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// ShipmentEventsChannel is the redis pub/sub channel carrying shipment events.
const ShipmentEventsChannel = "shipment:events"

// RedisPublisher publishes shipment events for consumers outside this process.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to redisURL and checks the connection.
func NewRedisPublisher(ctx context.Context, redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPublisherWithClient(client), nil
}

func NewRedisPublisherWithClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, channel: ShipmentEventsChannel}
}

// ShipmentCreated publishes the event. Failures are logged, never returned.
func (p *RedisPublisher) ShipmentCreated(ctx context.Context, shipment models.Shipment) {
	data, err := json.Marshal(WebSocketMessage{Type: EventShipmentCreated, Data: shipment})
	if err != nil {
		logger.Log.Errorw("failed to marshal shipment event", "shipment_id", shipment.ShipmentID, "error", err)
		return
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		logger.Log.Warnw("failed to publish shipment event", "shipment_id", shipment.ShipmentID, "error", err)
	}
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Notifiers fans a shipment event out to every notifier in order.
type Notifiers []ShipmentNotifier

func (n Notifiers) ShipmentCreated(ctx context.Context, shipment models.Shipment) {
	for _, notifier := range n {
		notifier.ShipmentCreated(ctx, shipment)
	}
}
