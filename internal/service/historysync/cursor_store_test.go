package historysync

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/krobus00/rapidwire-bot/internal/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCursorStore(t *testing.T) (*RedisCursorStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisCursorStore(client, "rapidwire:history_sync:cursor")
	require.NoError(t, err)

	return store, server
}

func TestRedisCursorStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		store, _ := newRedisCursorStore(t)

		_, found, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("save then load", func(t *testing.T) {
		store, server := newRedisCursorStore(t)
		cursor := entity.HistoryCursor{JournalID: "abc", Timestamp: 1700000000, SyncedAt: 1700000100}

		require.NoError(t, store.Save(ctx, cursor))
		assert.True(t, server.Exists("rapidwire:history_sync:cursor"))

		got, found, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, cursor, got)
	})

	t.Run("corrupt value is an error", func(t *testing.T) {
		store, server := newRedisCursorStore(t)
		require.NoError(t, server.Set("rapidwire:history_sync:cursor", "{not json"))

		_, _, err := store.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("key is required", func(t *testing.T) {
		_, err := NewRedisCursorStore(nil, "")
		assert.Error(t, err)
	})
}
