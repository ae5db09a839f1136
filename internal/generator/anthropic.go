package generator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/betguide449-cyber/betguide-cli/internal/model"
	"github.com/betguide449-cyber/betguide-cli/internal/resilience"
	"github.com/betguide449-cyber/betguide-cli/pkg/anthropic"
)

// AnthropicGenerator implements Generator on top of the Anthropic messages API.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	retry     resilience.RetryConfig
	now       func() time.Time
}

// Option configures the generator.
type Option func(*AnthropicGenerator)

// WithRetryConfig overrides the default retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(g *AnthropicGenerator) {
		g.retry = cfg
	}
}

// WithClock overrides the wall clock used for date/time prompt context.
func WithClock(now func() time.Time) Option {
	return func(g *AnthropicGenerator) {
		g.now = now
	}
}

// NewAnthropic creates a generator backed by the given Anthropic client.
func NewAnthropic(client anthropic.Client, modelID string, maxTokens int, opts ...Option) *AnthropicGenerator {
	g := &AnthropicGenerator{
		client:    client,
		model:     modelID,
		maxTokens: int64(maxTokens),
		retry:     resilience.DefaultRetryConfig(),
		now:       time.Now,
	}
	g.retry.OnRetry = resilience.RetryLogger("anthropic", "generate predictions")
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate requests a batch of predictions. Rate-limit failures are retried
// with exponential backoff; exhausting the budget yields ErrSaturated. Every
// other provider error propagates untouched.
func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (*model.PredictionBatch, error) {
	now := g.now()

	resp, err := resilience.DoVal(ctx, g.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return g.client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     g.model,
			MaxTokens: g.maxTokens,
			System:    systemPrompt(req.Tier, now.Format("Mon Jan 2 2006")),
			Messages: []anthropic.Message{
				{Role: "user", Content: userPrompt(req, now)},
			},
		})
	})
	if err != nil {
		if resilience.IsRateLimited(err) {
			zap.L().Warn("generator retries exhausted",
				zap.String("tier", string(req.Tier)),
				zap.Error(err),
			)
			return nil, ErrSaturated
		}
		return nil, err
	}

	resp.Usage.LogUsage(g.model, "generate predictions")

	batch := extractBatch(resp.Text())
	zap.L().Info("generated predictions",
		zap.String("tier", string(req.Tier)),
		zap.Int("requested", req.BatchSize),
		zap.Int("returned", len(batch.Predictions)),
		zap.Int("sources", len(batch.Sources)),
	)
	return batch, nil
}
