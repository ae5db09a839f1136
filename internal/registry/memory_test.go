package registry

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

func TestMemoryRegistry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		_, err := m.Get(ctx, "NOPE")
		assert.True(t, eris.Is(err, ErrNotFound))
	})

	t.Run("create and get", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		require.NoError(t, m.Create(ctx, model.VipCode{Code: "A", Predictions: 10, Active: true}))
		c, err := m.Get(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, 10, c.Predictions)
		assert.True(t, c.Active)
	})

	t.Run("update merges single fields", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		m.Seed(model.VipCode{Code: "A", Predictions: 10, UsedPredictions: 2, Active: true, AssignedTo: "dev-1"})

		require.NoError(t, m.Update(ctx, "A", Fields{"usedPredictions": 5}))

		c, err := m.Get(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, 5, c.UsedPredictions)
		// Untouched fields survive the merge.
		assert.Equal(t, 10, c.Predictions)
		assert.Equal(t, "dev-1", c.AssignedTo)
		assert.Equal(t, 1, m.UpdateCalls)
	})

	t.Run("bind claims an unassigned code once", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		m.Seed(model.VipCode{Code: "A", Predictions: 10, Active: true})

		require.NoError(t, m.Bind(ctx, "A", "dev-1"))
		require.NoError(t, m.Bind(ctx, "A", "dev-1")) // same holder re-binds

		err := m.Bind(ctx, "A", "dev-2")
		assert.True(t, eris.Is(err, ErrAlreadyBound))

		c, getErr := m.Get(ctx, "A")
		require.NoError(t, getErr)
		assert.Equal(t, "dev-1", c.AssignedTo)
		assert.Equal(t, 3, m.BindCalls)
	})

	t.Run("bind missing code", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		err := m.Bind(ctx, "NOPE", "dev-1")
		assert.True(t, eris.Is(err, ErrNotFound))
	})

	t.Run("delete then get", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		m.Seed(model.VipCode{Code: "A", Predictions: 10})
		require.NoError(t, m.Delete(ctx, "A"))
		_, err := m.Get(ctx, "A")
		assert.True(t, eris.Is(err, ErrNotFound))
	})

	t.Run("list sorts by code", func(t *testing.T) {
		t.Parallel()
		m := NewMemory()
		m.Seed(model.VipCode{Code: "C"})
		m.Seed(model.VipCode{Code: "A"})
		m.Seed(model.VipCode{Code: "B"})

		codes, err := m.List(ctx)
		require.NoError(t, err)
		require.Len(t, codes, 3)
		assert.Equal(t, "A", codes[0].Code)
		assert.Equal(t, "C", codes[2].Code)
	})
}
