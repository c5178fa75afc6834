package keystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SaveConsume(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		store := NewMemory(0)
		ctx := context.Background()

		id := NewID()
		require.NoError(t, store.Save(ctx, id, "secret-key", time.Minute))

		key, err := store.Consume(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "secret-key", key)
	})

	t.Run("consume is single use", func(t *testing.T) {
		t.Parallel()

		store := NewMemory(0)
		ctx := context.Background()

		id := NewID()
		require.NoError(t, store.Save(ctx, id, "secret-key", time.Minute))

		_, err := store.Consume(ctx, id)
		require.NoError(t, err)

		_, err = store.Consume(ctx, id)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		t.Parallel()

		store := NewMemory(0)
		_, err := store.Consume(context.Background(), NewID())
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired key is gone even before cleanup", func(t *testing.T) {
		t.Parallel()

		store := NewMemory(0)
		ctx := context.Background()

		id := NewID()
		require.NoError(t, store.Save(ctx, id, "secret-key", -time.Second))

		_, err := store.Consume(ctx, id)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired consume removes the entry", func(t *testing.T) {
		t.Parallel()

		store := NewMemory(0)
		ctx := context.Background()

		id := NewID()
		require.NoError(t, store.Save(ctx, id, "secret-key", -time.Second))

		_, _ = store.Consume(ctx, id)

		store.mu.Lock()
		_, exists := store.entries[id]
		store.mu.Unlock()
		assert.False(t, exists)
	})

	t.Run("save replaces previous key", func(t *testing.T) {
		t.Parallel()

		store := NewMemory(0)
		ctx := context.Background()

		id := NewID()
		require.NoError(t, store.Save(ctx, id, "first", time.Minute))
		require.NoError(t, store.Save(ctx, id, "second", time.Minute))

		key, err := store.Consume(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "second", key)
	})

	t.Run("empty identifier rejected", func(t *testing.T) {
		t.Parallel()

		store := NewMemory(0)
		err := store.Save(context.Background(), "", "key", time.Minute)
		require.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestMemory_Janitor(t *testing.T) {
	t.Parallel()

	store := NewMemory(10 * time.Millisecond)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	id := NewID()
	require.NoError(t, store.Save(ctx, id, "secret-key", time.Millisecond))

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.entries) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemory_CloseIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemory(time.Minute)
	require.NoError(t, store.Close())
	assert.NotPanics(t, func() {
		_ = store.Close()
	})

	// A store without a janitor tolerates Close too.
	plain := NewMemory(0)
	require.NoError(t, plain.Close())
	require.NoError(t, plain.Close())
}

func TestNewID(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, NewID())
	assert.NotEqual(t, NewID(), NewID())
}
