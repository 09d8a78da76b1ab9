package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreTests runs the standard store test suite against any Store implementation.
func RunStoreTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("Get", func(t *testing.T) {
		runGetTests(t, newStore)
	})
	t.Run("Set", func(t *testing.T) {
		runSetTests(t, newStore)
	})
	t.Run("Close", func(t *testing.T) {
		runCloseTests(t, newStore)
	})
}

func runGetTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("absent key", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		value, ok, err := store.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "a", "1"))
		require.NoError(t, store.Set(ctx, "b", "2"))

		a, _, err := store.Get(ctx, "a")
		require.NoError(t, err)
		b, _, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "1", a)
		assert.Equal(t, "2", b)
	})
}

func runSetTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("round trips value", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		ctx := context.Background()
		payload := `[{"id":550,"title":"Fight Club"},{"id":13,"title":"Forrest Gump"}]`
		require.NoError(t, store.Set(ctx, "movie-wishlist", payload))

		value, ok, err := store.Get(ctx, "movie-wishlist")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, payload, value)
	})

	t.Run("last writer wins", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "k", "first"))
		require.NoError(t, store.Set(ctx, "k", "second"))

		value, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", value)
	})

	t.Run("empty value is present", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "k", ""))

		_, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func runCloseTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("operations fail after close", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		require.NoError(t, store.Close())

		_, _, err := store.Get(context.Background(), "k")
		assert.ErrorIs(t, err, ErrStoreClosed)
		assert.ErrorIs(t, store.Set(context.Background(), "k", "v"), ErrStoreClosed)
	})
}
