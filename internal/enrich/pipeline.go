// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich produces summaries, sentiment labels, and contextual
// answers for fetched articles. Every AI call shares one rate limiter;
// when the limiter refuses or the backend fails, each operation degrades
// to a deterministic path rather than returning an error to the user.
package enrich

import (
	"context"

	"github.com/pdiddy/news-engine/internal/ai"
	"github.com/pdiddy/news-engine/internal/ratelimit"
	"github.com/pdiddy/news-engine/pkg/types"
)

const (
	defaultMaxWords    = 100
	defaultInputBudget = 3000

	// sentimentBudget caps sentiment prompt input; sentiment does not need
	// the full article to classify tone.
	sentimentBudget = 1000

	// contextBudget caps how much article context is attached to a
	// question prompt.
	contextBudget = 1000
)

// aiBackend is what the pipeline needs from the generative API client.
type aiBackend interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Pipeline runs the enrichment operations. Construct with New; the zero
// value is not usable.
type Pipeline struct {
	backend aiBackend
	limiter *ratelimit.Limiter
	cfg     types.EnrichmentConfig
}

// New builds a pipeline from config. The limiter is shared with other
// AI-backed stages; it must not be nil.
func New(cfg types.EnrichmentConfig, limiter *ratelimit.Limiter) *Pipeline {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = defaultMaxWords
	}
	if cfg.InputBudget <= 0 {
		cfg.InputBudget = defaultInputBudget
	}
	return &Pipeline{
		backend: ai.NewGemini(cfg.AIConfig),
		limiter: limiter,
		cfg:     cfg,
	}
}

// aiAllowed reports whether an AI call may be issued right now. It
// consumes one unit of the rolling budget when it returns true.
func (p *Pipeline) aiAllowed() bool {
	return p.backend.Configured() && p.limiter.Allow()
}

// truncate bounds s to max bytes. Prompt budgets are counted in bytes,
// matching how the upstream provider bills input.
func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
