package diary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeMalformedEntryID(t *testing.T) {
	registry := NewSubscriptionRegistry(nil)

	err := registry.Subscribe(context.Background(), "not-a-uuid", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnsubscribeMalformedEntryIDIsNoop(t *testing.T) {
	registry := NewSubscriptionRegistry(nil)

	assert.NoError(t, registry.Unsubscribe(context.Background(), "not-a-uuid", "u1"))
}

func TestIsSubscribedMalformedEntryID(t *testing.T) {
	registry := NewSubscriptionRegistry(nil)

	subscribed, err := registry.IsSubscribed(context.Background(), "not-a-uuid", "u1")
	assert.NoError(t, err)
	assert.False(t, subscribed)
}
