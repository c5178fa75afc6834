package keystore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := ConnectRedis(context.Background(), RedisConfig{
		ConnectionURL:  "not-a-redis-url",
		RetryAttempts:  1,
		RetryInterval:  time.Millisecond,
		ConnectTimeout: time.Second,
	})
	require.ErrorIs(t, err, ErrFailedToParseRedisConnString)
}

// TestRedis_SaveConsume runs against a real Redis instance when
// TEST_REDIS_URL is set, e.g. TEST_REDIS_URL=redis://localhost:6379/0.
func TestRedis_SaveConsume(t *testing.T) {
	connURL := os.Getenv("TEST_REDIS_URL")
	if connURL == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}

	client, err := ConnectRedis(context.Background(), RedisConfig{
		ConnectionURL:  connURL,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedis(client, "magiclink_test")
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		id := NewID()
		require.NoError(t, store.Save(ctx, id, "secret-key", time.Minute))

		key, err := store.Consume(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "secret-key", key)
	})

	t.Run("consume is single use", func(t *testing.T) {
		id := NewID()
		require.NoError(t, store.Save(ctx, id, "secret-key", time.Minute))

		_, err := store.Consume(ctx, id)
		require.NoError(t, err)

		_, err = store.Consume(ctx, id)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := store.Consume(ctx, NewID())
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ttl expiry", func(t *testing.T) {
		id := NewID()
		require.NoError(t, store.Save(ctx, id, "secret-key", 50*time.Millisecond))

		assert.Eventually(t, func() bool {
			_, err := store.Consume(ctx, id)
			return err != nil
		}, time.Second, 25*time.Millisecond)
	})

	t.Run("empty identifier rejected", func(t *testing.T) {
		err := store.Save(ctx, "", "secret-key", time.Minute)
		require.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestNewRedis_DefaultPrefix(t *testing.T) {
	t.Parallel()

	store := NewRedis(nil, "")
	require.Equal(t, "magiclink", store.prefix)

	store = NewRedis(nil, "custom")
	require.Equal(t, "custom", store.prefix)
}
