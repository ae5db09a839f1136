// Package registry provides the shared code registry: a keyed store of
// redeemable VIP codes read and written concurrently by every client device
// and the admin surface. Writes are partial-field merges with last-write-wins
// semantics; callers must treat every read as potentially stale by the time a
// subsequent write lands. The one exception is Bind, which is conditional so
// two devices cannot claim the same unbound code.
package registry

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

// ErrNotFound is returned when a code does not exist in the registry.
var ErrNotFound = eris.New("registry: code not found")

// ErrAlreadyBound is returned by Bind when another device holds the code.
var ErrAlreadyBound = eris.New("registry: code bound to another device")

// Fields is a partial-field update merged into an existing code entry.
type Fields map[string]any

// Registry is the remote code registry contract.
type Registry interface {
	// Get reads one code entry by key.
	Get(ctx context.Context, code string) (*model.VipCode, error)
	// Create writes a brand-new entry. It does not guard against overwrite;
	// duplicate checks are the caller's read-then-write responsibility.
	Create(ctx context.Context, c model.VipCode) error
	// Update merges the given fields into an existing entry, last write wins.
	Update(ctx context.Context, code string, fields Fields) error
	// Bind conditionally assigns the code to a device. It succeeds when the
	// code is unbound or already bound to the same device, and returns
	// ErrAlreadyBound otherwise.
	Bind(ctx context.Context, code, deviceID string) error
	// Delete removes an entry unconditionally.
	Delete(ctx context.Context, code string) error
	// List reads all entries.
	List(ctx context.Context) ([]model.VipCode, error)
}
