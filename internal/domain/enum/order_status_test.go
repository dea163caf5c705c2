package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusCompleted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.False(t, OrderStatusPending.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, st)

	_, err = ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestOrderStatusScan(t *testing.T) {
	var st OrderStatus
	require.NoError(t, st.Scan([]byte("cancelled")))
	assert.Equal(t, OrderStatusCancelled, st)

	require.NoError(t, st.Scan(nil))
	assert.Equal(t, OrderStatusPending, st)

	assert.Error(t, st.Scan(42))
}
