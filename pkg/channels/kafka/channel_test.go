package kafka

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChannel_RequiresBrokers(t *testing.T) {
	t.Setenv(brokersEnv, "")

	publisher, subscriber, err := CreateChannel(watermill.NopLogger{}, "api")

	require.Error(t, err)
	assert.Contains(t, err.Error(), brokersEnv)
	assert.Nil(t, publisher)
	assert.Nil(t, subscriber)
}
