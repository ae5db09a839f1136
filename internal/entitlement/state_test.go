package entitlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
	"github.com/betguide449-cyber/betguide-cli/internal/store"
)

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing key reads as absent", func(t *testing.T) {
		t.Parallel()
		s := store.NewMemory()
		_, ok := loadJSON[usageLedger](ctx, s, keyVipUsage)
		assert.False(t, ok)
	})

	t.Run("corrupt value reads as absent", func(t *testing.T) {
		t.Parallel()
		s := store.NewMemory()
		require.NoError(t, s.Set(ctx, keyVipUsage, "{not json"))
		_, ok := loadJSON[usageLedger](ctx, s, keyVipUsage)
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		s := store.NewMemory()
		in := usageLedger{Date: "Sun Aug 30 2026", Count: 12}
		require.NoError(t, saveJSON(ctx, s, keyVipUsage, in))
		out, ok := loadJSON[usageLedger](ctx, s, keyVipUsage)
		require.True(t, ok)
		assert.Equal(t, in, out)
	})
}

func TestCorruptStateRecovers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("corrupt entitlement falls back to free", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		require.NoError(t, env.store.Set(ctx, keyEntitlement, "###"))
		assert.Equal(t, model.RoleFree, env.engine.Status(ctx).Role)
	})

	t.Run("corrupt ledger reads as zero and is rewritten on debit", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.redeemVip(t, "VIP100", 100, 0)
		require.NoError(t, env.store.Set(ctx, keyVipUsage, "garbage"))

		assert.Zero(t, env.engine.Status(ctx).DailyCount)

		_, err := env.engine.Fetch(ctx, FetchRequest{Tier: model.TierVip, BatchSize: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, env.engine.Status(ctx).DailyCount)
	})

	t.Run("corrupt free cache regenerates", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		require.NoError(t, env.store.Set(ctx, keyFreeCache, "[broken"))

		res, err := env.engine.Fetch(ctx, FetchRequest{Tier: model.TierFree})
		require.NoError(t, err)
		assert.False(t, res.FromCache)
		assert.Len(t, res.Predictions, 4)
	})
}
