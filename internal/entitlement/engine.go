// Package entitlement implements the freemium quota state machine: code
// redemption with device binding, lazy daily resets, pre-flight quota checks,
// and the optimistic debit-then-generate sequence. All persistent state flows
// through the injected local store and remote registry, so tests run against
// in-memory fakes and a fixed clock.
package entitlement

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/betguide449-cyber/betguide-cli/internal/generator"
	"github.com/betguide449-cyber/betguide-cli/internal/model"
	"github.com/betguide449-cyber/betguide-cli/internal/registry"
	"github.com/betguide449-cyber/betguide-cli/internal/store"
)

// Config holds the engine's quota constants and admin secrets.
type Config struct {
	// DailyLimit caps VIP predictions per calendar day per device.
	DailyLimit int
	// FreeBatchSize is the fixed size of the one daily free batch.
	FreeBatchSize int
	// AdminMasterCode routes redemption into the admin confirmation flow.
	AdminMasterCode string
	// AdminConfirmKey is the second secret verified by ConfirmAdmin.
	AdminConfirmKey string
}

// Engine coordinates the local store, the shared code registry, and the
// prediction generator.
type Engine struct {
	store    store.Store
	registry registry.Registry
	gen      generator.Generator
	cfg      Config
	now      func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the wall clock, fixing "today" in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine over the given collaborators.
func New(s store.Store, reg registry.Registry, gen generator.Generator, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		registry: reg,
		gen:      gen,
		cfg:      cfg,
		now:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// today renders the current calendar day. Date comparisons against stored
// records are the sole daily-reset mechanism; there is no scheduled job.
func (e *Engine) today() string {
	return e.now().Format("Mon Jan 2 2006")
}

// DeviceID returns the device identity, generating and persisting it on first
// use. It is a binding key, not a credential.
func (e *Engine) DeviceID(ctx context.Context) (string, error) {
	id, err := e.store.Get(ctx, keyDeviceID)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !eris.Is(err, store.ErrNotFound) {
		return "", err
	}

	id = "dev-" + uuid.NewString()
	if err := e.store.Set(ctx, keyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}

// entitlement loads the local access record, defaulting to free.
func (e *Engine) entitlement(ctx context.Context) model.Entitlement {
	ent, ok := loadJSON[model.Entitlement](ctx, e.store, keyEntitlement)
	if !ok || ent.Role == "" {
		return model.Entitlement{Role: model.RoleFree}
	}
	return ent
}

// usageCount returns today's VIP ledger count. A stale date reads as zero;
// the reset is written out on the next debit.
func (e *Engine) usageCount(ctx context.Context) int {
	ledger, ok := loadJSON[usageLedger](ctx, e.store, keyVipUsage)
	if !ok || ledger.Date != e.today() {
		return 0
	}
	return ledger.Count
}

// RedeemResult reports the outcome of a redemption attempt.
type RedeemResult struct {
	// AdminChallenge is set when the input matched the admin master code;
	// the caller must collect the confirmation key and call ConfirmAdmin.
	AdminChallenge bool
	// Remaining is the code's unconsumed pool after a successful VIP unlock.
	Remaining int
}

// Redeem validates an access code against the registry and, on success, binds
// it to this device and switches the local role to vip. All failures are
// side-effect-free.
func (e *Engine) Redeem(ctx context.Context, input string) (*RedeemResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidCode
	}

	if input == e.cfg.AdminMasterCode {
		return &RedeemResult{AdminChallenge: true}, nil
	}

	code, err := e.registry.Get(ctx, input)
	if eris.Is(err, registry.ErrNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	if !code.Active {
		return nil, ErrInactiveCode
	}

	device, err := e.DeviceID(ctx)
	if err != nil {
		return nil, err
	}
	if code.AssignedTo != "" && code.AssignedTo != device {
		return nil, ErrDeviceMismatch
	}

	remaining := code.Remaining()
	if remaining <= 0 {
		return nil, ErrExhaustedCode
	}

	if err := e.registry.Bind(ctx, input, device); err != nil {
		if eris.Is(err, registry.ErrAlreadyBound) {
			// Lost the bind race to another device between read and write.
			return nil, ErrDeviceMismatch
		}
		return nil, err
	}

	ent := model.Entitlement{
		Role:            model.RoleVip,
		Code:            input,
		PredictionsLeft: remaining,
		UnlockedAt:      e.now().UnixMilli(),
	}
	if err := saveJSON(ctx, e.store, keyEntitlement, ent); err != nil {
		return nil, err
	}

	zap.L().Info("code redeemed",
		zap.String("code", input),
		zap.Int("remaining", remaining),
	)
	return &RedeemResult{Remaining: remaining}, nil
}

// ConfirmAdmin verifies the admin confirmation key and, on success, grants the
// admin role, which bypasses every quota check.
func (e *Engine) ConfirmAdmin(ctx context.Context, key string) error {
	if key != e.cfg.AdminConfirmKey {
		return ErrAdminDenied
	}
	if err := saveJSON(ctx, e.store, keyEntitlement, model.Entitlement{Role: model.RoleAdmin}); err != nil {
		return err
	}
	zap.L().Info("admin mode enabled")
	return nil
}

// SignOut clears the entitlement record only. Daily counters, caches, and the
// device identity survive, so signing back in the same day resumes the same
// ledger.
func (e *Engine) SignOut(ctx context.Context) error {
	return e.store.Delete(ctx, keyEntitlement)
}

// FetchRequest describes one user-initiated prediction request.
type FetchRequest struct {
	Tier      model.Tier
	BatchSize int
	Market    string
	// Force bypasses the free-tier daily cache, overwriting it on success.
	Force bool
}

// FetchResult carries the batch shown to the user.
type FetchResult struct {
	Predictions []model.Prediction
	Sources     []model.Source
	FromCache   bool
}

// Fetch runs the pre-flight checks, the optimistic debit, and the generator
// call. Quota and registry usage are debited before the generator resolves;
// a generator failure does not roll the debit back.
func (e *Engine) Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	ent := e.entitlement(ctx)
	today := e.today()

	// VIP content must never be requested without entitlement.
	if req.Tier == model.TierVip && ent.Role == model.RoleFree {
		return &FetchResult{}, nil
	}

	size := req.BatchSize
	market := req.Market
	if req.Tier == model.TierFree {
		size = e.cfg.FreeBatchSize
		market = "Any"

		if cache, ok := loadJSON[freeCache](ctx, e.store, keyFreeCache); ok && cache.Date == today && !req.Force {
			return &FetchResult{Predictions: cache.Predictions, FromCache: true}, nil
		}
	}

	// A clamped-to-zero batch means the pool or the day is spent; calling the
	// generator would hand out an undebited prediction.
	if req.Tier == model.TierVip && size <= 0 {
		return &FetchResult{}, nil
	}

	if req.Tier == model.TierVip && ent.Role == model.RoleVip {
		count := e.usageCount(ctx)
		if count >= e.cfg.DailyLimit {
			return nil, ErrDailyLimitReached
		}
		if count+size > e.cfg.DailyLimit {
			return nil, &DailyRemainderError{Remaining: e.cfg.DailyLimit - count}
		}
		if size > ent.PredictionsLeft {
			return nil, ErrInsufficientTotalPool
		}

		if err := e.debit(ctx, ent, size, count); err != nil {
			return nil, err
		}
	}

	batch, err := e.gen.Generate(ctx, generator.Request{
		Tier:      req.Tier,
		BatchSize: size,
		Market:    market,
	})
	if err != nil {
		if eris.Is(err, generator.ErrSaturated) {
			return nil, ErrServiceSaturated
		}
		return nil, err
	}

	if len(batch.Predictions) > 0 {
		switch req.Tier {
		case model.TierFree:
			if err := saveJSON(ctx, e.store, keyFreeCache, freeCache{Date: today, Predictions: batch.Predictions}); err != nil {
				return nil, err
			}
		case model.TierVip:
			if err := e.appendHistory(ctx, batch.Predictions); err != nil {
				return nil, err
			}
		}
	}

	return &FetchResult{Predictions: batch.Predictions, Sources: batch.Sources}, nil
}

// debit advances the registry usage counter and the local daily ledger before
// the generator is invoked. The registry re-read catches drift from other
// devices and admin edits; a vanished code demotes the session.
func (e *Engine) debit(ctx context.Context, ent model.Entitlement, size, count int) error {
	if ent.Code != "" {
		code, err := e.registry.Get(ctx, ent.Code)
		if eris.Is(err, registry.ErrNotFound) {
			if err := saveJSON(ctx, e.store, keyEntitlement, model.Entitlement{Role: model.RoleFree}); err != nil {
				return err
			}
			zap.L().Warn("bound code vanished, demoting to free", zap.String("code", ent.Code))
			return ErrSessionExpired
		}
		if err != nil {
			return err
		}

		newUsed := code.UsedPredictions + size
		if err := e.registry.Update(ctx, ent.Code, registry.Fields{"usedPredictions": newUsed}); err != nil {
			return err
		}

		ent.PredictionsLeft = code.Predictions - newUsed
		if ent.PredictionsLeft < 0 {
			ent.PredictionsLeft = 0
		}
		if err := saveJSON(ctx, e.store, keyEntitlement, ent); err != nil {
			return err
		}
	}

	return saveJSON(ctx, e.store, keyVipUsage, usageLedger{Date: e.today(), Count: count + size})
}

// appendHistory accumulates a VIP batch into today's history, discarding any
// stale record from a previous day.
func (e *Engine) appendHistory(ctx context.Context, batch []model.Prediction) error {
	today := e.today()
	var existing []model.Prediction
	if h, ok := loadJSON[historyCache](ctx, e.store, keyVipHistory); ok && h.Date == today {
		existing = h.Predictions
	}
	return saveJSON(ctx, e.store, keyVipHistory, historyCache{
		Date:        today,
		Predictions: append(existing, batch...),
	})
}

// History returns today's accumulated VIP batches.
func (e *Engine) History(ctx context.Context) ([]model.Prediction, error) {
	h, ok := loadJSON[historyCache](ctx, e.store, keyVipHistory)
	if !ok || h.Date != e.today() || len(h.Predictions) == 0 {
		return nil, ErrNoHistory
	}
	return h.Predictions, nil
}

// NormalizeBatchSize clamps a user-entered batch size to [1, DailyLimit] and,
// for a vip role, further to the code's remaining pool and today's remaining
// allowance. The clamp is idempotent and never errors; an exhausted pool or
// day yields zero, which callers treat as nothing fetchable.
func (e *Engine) NormalizeBatchSize(ctx context.Context, n int) int {
	if n < 1 {
		n = 1
	}
	if n > e.cfg.DailyLimit {
		n = e.cfg.DailyLimit
	}

	ent := e.entitlement(ctx)
	if ent.Role == model.RoleVip {
		if n > ent.PredictionsLeft {
			n = ent.PredictionsLeft
		}
		if remaining := e.cfg.DailyLimit - e.usageCount(ctx); n > remaining {
			n = remaining
		}
	}
	return n
}

// Status is the engine state the presentation layer renders.
type Status struct {
	Role              model.Role `json:"role"`
	Code              string     `json:"code,omitempty"`
	PredictionsLeft   int        `json:"predictionsLeft"`
	DailyCount        int        `json:"dailyCount"`
	DailyLimit        int        `json:"dailyLimit"`
	DailyLimitReached bool       `json:"dailyLimitReached"`
	FreeCachedToday   bool       `json:"freeCachedToday"`
	HistoryAvailable  bool       `json:"historyAvailable"`
	Date              string     `json:"date"`
}

// Status reports the current role, quota counters, and cache flags.
func (e *Engine) Status(ctx context.Context) Status {
	ent := e.entitlement(ctx)
	today := e.today()
	count := e.usageCount(ctx)

	cache, cacheOK := loadJSON[freeCache](ctx, e.store, keyFreeCache)
	history, histOK := loadJSON[historyCache](ctx, e.store, keyVipHistory)

	return Status{
		Role:              ent.Role,
		Code:              ent.Code,
		PredictionsLeft:   ent.PredictionsLeft,
		DailyCount:        count,
		DailyLimit:        e.cfg.DailyLimit,
		DailyLimitReached: count >= e.cfg.DailyLimit,
		FreeCachedToday:   cacheOK && cache.Date == today && len(cache.Predictions) > 0,
		HistoryAvailable:  histOK && history.Date == today && len(history.Predictions) > 0,
		Date:              e.now().Format("Monday, January 2, 2006"),
	}
}
