package entitlement

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Redemption-time failures. All are resolved before any registry write.
var (
	ErrInvalidCode    = eris.New("entitlement: invalid code")
	ErrInactiveCode   = eris.New("entitlement: code is inactive")
	ErrDeviceMismatch = eris.New("entitlement: code is already used on another device")
	ErrExhaustedCode  = eris.New("entitlement: code has exhausted its predictions")
	ErrAdminDenied    = eris.New("entitlement: access denied")
)

// Pre-flight and fetch failures.
var (
	ErrDailyLimitReached     = eris.New("entitlement: daily limit reached")
	ErrInsufficientTotalPool = eris.New("entitlement: not enough predictions left in your code, please top up")
	ErrSessionExpired        = eris.New("entitlement: your access code no longer exists")
	ErrServiceSaturated      = eris.New("entitlement: prediction service saturated, try again later")
	ErrNoHistory             = eris.New("entitlement: no history found for today")
)

// Admin-surface failures.
var (
	ErrNotAdmin      = eris.New("entitlement: admin role required")
	ErrDuplicateCode = eris.New("entitlement: code already exists")
)

// DailyRemainderError denies a fetch that would overrun the daily ceiling,
// reporting exactly how many predictions remain today.
type DailyRemainderError struct {
	Remaining int
}

func (e *DailyRemainderError) Error() string {
	return fmt.Sprintf("entitlement: only %d predictions left for today", e.Remaining)
}
