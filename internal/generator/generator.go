// Package generator invokes the external prediction model. It sits below the
// entitlement layer: callers have already decided the request is allowed.
package generator

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
)

// ErrSaturated is returned after the rate-limit retry budget is exhausted,
// distinct from any other generation failure.
var ErrSaturated = eris.New("generator: service saturated, try again later")

// MinBatchSize and MaxBatchSize bound a single generation request.
const (
	MinBatchSize = 1
	MaxBatchSize = 50
)

// Request describes one generation call.
type Request struct {
	Tier      model.Tier
	BatchSize int
	Market    string
}

// Generator produces a batch of predictions or fails. A malformed or empty
// model response is an empty batch, not an error.
type Generator interface {
	Generate(ctx context.Context, req Request) (*model.PredictionBatch, error)
}

// ClampBatchSize forces a requested batch size into the provider's bounds.
func ClampBatchSize(n int) int {
	if n < MinBatchSize {
		return MinBatchSize
	}
	if n > MaxBatchSize {
		return MaxBatchSize
	}
	return n
}
