package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ChannelAll receives every event regardless of type.
const ChannelAll = "pos:events:all"

// RedisPublisher publishes events on redis pub/sub channels
// "pos:events:<type>" and "pos:events:all".
type RedisPublisher struct {
	client redis.UniversalClient
}

// NewRedisPublisher wraps an existing client.
func NewRedisPublisher(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// NewRedisClient builds a client from connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Channel returns the type-specific channel name.
func Channel(eventType string) string {
	return fmt.Sprintf("pos:events:%s", eventType)
}

func (p *RedisPublisher) Publish(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, Channel(event.EventType), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if err := p.client.Publish(ctx, ChannelAll, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to all channel: %w", err)
	}

	return nil
}

// Ping checks connectivity.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
