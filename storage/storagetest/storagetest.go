// Package storagetest holds the behaviour every storage.KeyValue backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/jrsteele09/uzera-playground/storage"
	"github.com/stretchr/testify/require"
)

// Run exercises the get/set/remove contract against kv. kv must start empty.
func Run(t *testing.T, kv storage.KeyValue) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		value, found, err := kv.Get(ctx, "missing")
		require.NoError(t, err)
		require.False(t, found)
		require.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "greeting", `{"hello":"world"}`))

		value, found, err := kv.Get(ctx, "greeting")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, `{"hello":"world"}`, value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "greeting", "first"))
		require.NoError(t, kv.Set(ctx, "greeting", "second"))

		value, found, err := kv.Get(ctx, "greeting")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "second", value)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "empty", ""))

		value, found, err := kv.Get(ctx, "empty")
		require.NoError(t, err)
		require.True(t, found)
		require.Empty(t, value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "a", "1"))
		require.NoError(t, kv.Set(ctx, "b", "2"))
		require.NoError(t, kv.Remove(ctx, "a"))

		_, found, err := kv.Get(ctx, "a")
		require.NoError(t, err)
		require.False(t, found)

		value, found, err := kv.Get(ctx, "b")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "2", value)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "gone", "soon"))
		require.NoError(t, kv.Remove(ctx, "gone"))

		_, found, err := kv.Get(ctx, "gone")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("remove missing key", func(t *testing.T) {
		require.NoError(t, kv.Remove(ctx, "never-set"))
	})
}
