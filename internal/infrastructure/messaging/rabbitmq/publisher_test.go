package rabbitmq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher_BadURL(t *testing.T) {
	_, err := NewPublisher("not-a-url", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq dial")
}

func TestPublish_UnmarshalablePayload_FailsBeforeDialing(t *testing.T) {
	p := &Publisher{url: "not-a-url", exchange: DefaultExchange}

	err := p.Publish(context.Background(), "audit.user_created", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal payload")
}

func TestPublish_ReconnectFailure_Surfaces(t *testing.T) {
	p := &Publisher{url: "not-a-url", exchange: DefaultExchange}

	err := p.Publish(context.Background(), "audit.user_created", map[string]string{"id": "a1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq dial")
	assert.NoError(t, p.Close())
}
