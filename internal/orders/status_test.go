package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusProcessing))
	assert.True(t, CanTransition(StatusProcessing, StatusShipped))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))

	// only forward, one step at a time
	assert.False(t, CanTransition(StatusPending, StatusShipped))
	assert.False(t, CanTransition(StatusProcessing, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusDelivered))
	assert.False(t, CanTransition(Status("UNKNOWN"), StatusProcessing))
}
