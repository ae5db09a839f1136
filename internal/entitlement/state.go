package entitlement

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
	"github.com/betguide449-cyber/betguide-cli/internal/store"
)

// Local store keys. Each holds one JSON record except the device id, which is
// a raw string.
const (
	keyDeviceID    = "device_id"
	keyEntitlement = "premium"
	keyFreeCache   = "free_cache"
	keyVipUsage    = "vip_usage"
	keyVipHistory  = "vip_history"
)

// freeCache holds the single free-tier batch for one calendar day.
type freeCache struct {
	Date        string             `json:"date"`
	Predictions []model.Prediction `json:"predictions"`
}

// usageLedger tracks VIP predictions consumed today against the daily ceiling.
type usageLedger struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// historyCache accumulates every VIP batch fetched today, for re-display only.
type historyCache struct {
	Date        string             `json:"date"`
	Predictions []model.Prediction `json:"predictions"`
}

// loadJSON reads and decodes one record. A missing key or a corrupt value is
// treated as absent state; corruption is recovered locally and never surfaces.
func loadJSON[T any](ctx context.Context, s store.Store, key string) (T, bool) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !eris.Is(err, store.ErrNotFound) {
			zap.L().Warn("local store read failed", zap.String("key", key), zap.Error(err))
		}
		return out, false
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		zap.L().Debug("discarding corrupt local record", zap.String("key", key), zap.Error(err))
		var zero T
		return zero, false
	}
	return out, true
}

// saveJSON encodes and persists one record.
func saveJSON[T any](ctx context.Context, s store.Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return eris.Wrapf(err, "entitlement: marshal %s", key)
	}
	return s.Set(ctx, key, string(raw))
}
