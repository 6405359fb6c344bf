package handlers

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidateEntryCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	h := &ModerationHandler{redis: client}
	ctx := context.Background()

	t.Run("drops the global listing and feed along with the entry view", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, globalListCacheKey, "cached", 0).Err())
		require.NoError(t, client.Set(ctx, globalFeedCacheKey, "cached", 0).Err())
		require.NoError(t, client.Set(ctx, "entry_view:e1", "cached", 0).Err())

		h.invalidateEntryCaches(ctx, "e1")

		assert.False(t, mr.Exists(globalListCacheKey))
		assert.False(t, mr.Exists(globalFeedCacheKey))
		assert.False(t, mr.Exists("entry_view:e1"))
	})

	t.Run("drops the globals even when the entry is unknown", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, globalListCacheKey, "cached", 0).Err())
		require.NoError(t, client.Set(ctx, globalFeedCacheKey, "cached", 0).Err())
		require.NoError(t, client.Set(ctx, "entry_view:e2", "cached", 0).Err())

		h.invalidateEntryCaches(ctx, "")

		assert.False(t, mr.Exists(globalListCacheKey))
		assert.False(t, mr.Exists(globalFeedCacheKey))
		assert.True(t, mr.Exists("entry_view:e2"))
	})
}
