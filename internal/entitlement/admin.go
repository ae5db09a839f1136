package entitlement

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
	"github.com/betguide449-cyber/betguide-cli/internal/registry"
)

// The admin code-lifecycle surface. Every operation goes straight to the
// registry; nothing here is cached locally, and concurrent admin edits are
// last-write-wins.

func (e *Engine) requireAdmin(ctx context.Context) error {
	if e.entitlement(ctx).Role != model.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}

// ListCodes reads every code entry.
func (e *Engine) ListCodes(ctx context.Context) ([]model.VipCode, error) {
	if err := e.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return e.registry.List(ctx)
}

// CreateCode provisions a new code with the given total pool.
func (e *Engine) CreateCode(ctx context.Context, code string, quota int) error {
	if err := e.requireAdmin(ctx); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" || quota <= 0 {
		return eris.New("entitlement: code and a positive quota are required")
	}

	_, err := e.registry.Get(ctx, code)
	if err == nil {
		return ErrDuplicateCode
	}
	if !eris.Is(err, registry.ErrNotFound) {
		return err
	}

	if err := e.registry.Create(ctx, model.VipCode{
		Code:        code,
		Predictions: quota,
		Active:      true,
		CreatedAt:   e.now().UnixMilli(),
	}); err != nil {
		return err
	}

	zap.L().Info("code created", zap.String("code", code), zap.Int("quota", quota))
	return nil
}

// ToggleCode flips a code's active gate in place, leaving binding and usage
// untouched. It returns the new active state.
func (e *Engine) ToggleCode(ctx context.Context, code string) (bool, error) {
	if err := e.requireAdmin(ctx); err != nil {
		return false, err
	}

	c, err := e.registry.Get(ctx, code)
	if eris.Is(err, registry.ErrNotFound) {
		return false, ErrInvalidCode
	}
	if err != nil {
		return false, err
	}

	newState := !c.Active
	if err := e.registry.Update(ctx, code, registry.Fields{"active": newState}); err != nil {
		return false, err
	}
	return newState, nil
}

// DeleteCode removes a code unconditionally. A device bound to it discovers
// the deletion through the session-expired path on its next fetch.
func (e *Engine) DeleteCode(ctx context.Context, code string) error {
	if err := e.requireAdmin(ctx); err != nil {
		return err
	}
	if err := e.registry.Delete(ctx, code); err != nil {
		return err
	}
	zap.L().Info("code deleted", zap.String("code", code))
	return nil
}
