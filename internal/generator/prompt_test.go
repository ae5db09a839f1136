package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	vip := systemPrompt(model.TierVip, "Sun Aug 30 2026")
	assert.Contains(t, vip, "Elite Sports Data Scientist")
	assert.Contains(t, vip, "Sun Aug 30 2026")

	free := systemPrompt(model.TierFree, "Sun Aug 30 2026")
	assert.Contains(t, free, "Conservative football analyst")
	assert.Contains(t, free, "Sun Aug 30 2026")
}

func TestMarketConstraints(t *testing.T) {
	t.Parallel()

	t.Run("free tier ignores the market filter", func(t *testing.T) {
		t.Parallel()
		got := marketConstraints(model.TierFree, "Correct Score")
		assert.Contains(t, got, "Double Chance")
		assert.NotContains(t, got, "Correct Score")
	})

	t.Run("vip without a filter gets the value focus", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, marketConstraints(model.TierVip, ""), "high value")
		assert.Contains(t, marketConstraints(model.TierVip, "Any"), "high value")
	})

	t.Run("known market pins its odds range", func(t *testing.T) {
		t.Parallel()
		got := marketConstraints(model.TierVip, "Correct Score")
		assert.Contains(t, got, "Correct Score")
		assert.Contains(t, got, "5.00 - 25.00")
	})

	t.Run("renamed market uses the prompt wording", func(t *testing.T) {
		t.Parallel()
		got := marketConstraints(model.TierVip, "Safe Market")
		assert.Contains(t, got, "Safe Bet")
		assert.Contains(t, got, "1.15 - 1.50")
	})

	t.Run("unknown market falls back to the default range", func(t *testing.T) {
		t.Parallel()
		got := marketConstraints(model.TierVip, "Corners")
		assert.Contains(t, got, "Corners")
		assert.Contains(t, got, defaultOddsRange)
	})
}

func TestUserPrompt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

	t.Run("embeds date, time, and count", func(t *testing.T) {
		t.Parallel()
		got := userPrompt(Request{Tier: model.TierVip, BatchSize: 6, Market: "BTTS"}, now)
		assert.Contains(t, got, "Sun Aug 30 2026")
		assert.Contains(t, got, "14:30")
		assert.Contains(t, got, "Select 6 UPCOMING matches")
		assert.Contains(t, got, `"riskLevel"`)
		assert.Contains(t, got, `"sources"`)
	})

	t.Run("clamps the requested count", func(t *testing.T) {
		t.Parallel()
		got := userPrompt(Request{Tier: model.TierVip, BatchSize: 500}, now)
		assert.Contains(t, got, "Select 50 UPCOMING matches")

		got = userPrompt(Request{Tier: model.TierFree, BatchSize: 0}, now)
		assert.Contains(t, got, "Select 1 UPCOMING matches")
	})

	t.Run("market section matches the tier", func(t *testing.T) {
		t.Parallel()
		got := userPrompt(Request{Tier: model.TierFree, BatchSize: 4}, now)
		assert.True(t, strings.Contains(got, "Over 1.5 Goals"))
		assert.NotContains(t, got, "high value")
	})
}
