package store

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		_, err := m.Get(ctx, "nope")
		assert.True(t, eris.Is(err, ErrNotFound))
	})

	t.Run("set overwrites", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "k", "v1"))
		require.NoError(t, m.Set(ctx, "k", "v2"))
		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", v)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "k", "v"))
		require.NoError(t, m.Delete(ctx, "k"))
		require.NoError(t, m.Delete(ctx, "k"))
		_, err := m.Get(ctx, "k")
		assert.True(t, eris.Is(err, ErrNotFound))
	})
}
