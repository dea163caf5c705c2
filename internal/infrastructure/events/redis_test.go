package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	assert.Equal(t, "pos:events:order.created", Channel(EventOrderCreated))
	assert.Equal(t, "pos:events:all", ChannelAll)
}

func TestRedisPublisherReportsUnreachableBroker(t *testing.T) {
	client := NewRedisClient("127.0.0.1:1", "", 0)
	defer client.Close()

	err := NewRedisPublisher(client).Publish(context.Background(), OrderEvent{EventType: EventOrderCreated, OrderNo: "ORD-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), OrderEvent{}))
}
