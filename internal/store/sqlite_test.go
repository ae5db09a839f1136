package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		s := newTestSQLite(t)
		_, err := s.Get(ctx, "nope")
		assert.True(t, eris.Is(err, ErrNotFound))
	})

	t.Run("set get roundtrip", func(t *testing.T) {
		t.Parallel()
		s := newTestSQLite(t)
		require.NoError(t, s.Set(ctx, "device_id", "dev-123"))
		v, err := s.Get(ctx, "device_id")
		require.NoError(t, err)
		assert.Equal(t, "dev-123", v)
	})

	t.Run("set upserts", func(t *testing.T) {
		t.Parallel()
		s := newTestSQLite(t)
		require.NoError(t, s.Set(ctx, "k", `{"count":1}`))
		require.NoError(t, s.Set(ctx, "k", `{"count":2}`))
		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `{"count":2}`, v)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		s := newTestSQLite(t)
		require.NoError(t, s.Set(ctx, "k", "v"))
		require.NoError(t, s.Delete(ctx, "k"))
		_, err := s.Get(ctx, "k")
		assert.True(t, eris.Is(err, ErrNotFound))
	})

	t.Run("values survive reopen", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "persist.db")

		s, err := NewSQLite(path)
		require.NoError(t, err)
		require.NoError(t, s.Set(ctx, "premium", `{"role":"vip"}`))
		require.NoError(t, s.Close())

		s2, err := NewSQLite(path)
		require.NoError(t, err)
		defer s2.Close()
		v, err := s2.Get(ctx, "premium")
		require.NoError(t, err)
		assert.Equal(t, `{"role":"vip"}`, v)
	})
}
