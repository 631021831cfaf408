// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify assesses the factual accuracy of text, PDF documents,
// and web pages. Every failure mode is encoded in the returned
// VerificationResult; Verify never returns an error to its caller.
package verify

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/pdiddy/news-engine/internal/ai"
	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/internal/ratelimit"
	"github.com/pdiddy/news-engine/pkg/types"
)

// defaultTextBudget caps how many characters of extracted content go into
// the verdict prompt.
const defaultTextBudget = 2000

// aiBackend is what the engine needs from the generative API client.
type aiBackend interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine runs verification requests. Construct with New.
type Engine struct {
	backend aiBackend
	limiter *ratelimit.Limiter
	client  *http.Client
	cfg     types.VerificationConfig
}

// New builds an engine from config. The limiter is shared with the
// enrichment pipeline; it must not be nil.
func New(cfg types.VerificationConfig, limiter *ratelimit.Limiter) *Engine {
	if cfg.TextBudget <= 0 {
		cfg.TextBudget = defaultTextBudget
	}
	return &Engine{
		backend: ai.NewGemini(cfg.AIConfig),
		limiter: limiter,
		client:  httputil.NewClient(cfg.Timeout),
		cfg:     cfg,
	}
}

const verdictPrompt = `Analyze the following text for factual accuracy. Consider:
1. Are the claims verifiable?
2. Do the facts seem consistent with known information?
3. Are there any obvious signs of misinformation?

Respond with:
- RESULT: True/False/Uncertain
- CONFIDENCE: (0-100)
- EXPLANATION: Brief explanation of your assessment

Text to analyze: %s`

// Verify resolves the input to text, submits it for a verdict, and
// returns a fully-populated result. Modality precedence is
// Text > Document > URL; exactly one modality is consumed per call. An
// empty input returns an Invalid verdict without any I/O.
func (e *Engine) Verify(ctx context.Context, in types.VerificationInput) types.VerificationResult {
	if in.IsEmpty() {
		return types.VerificationResult{
			Verdict:     types.VerdictInvalid,
			Explanation: "Please provide text, upload a PDF, or enter a URL to verify.",
			SourceInfo:  "No input provided",
		}
	}

	content, sourceInfo, res := e.resolveContent(ctx, in)
	if res != nil {
		return *res
	}
	if strings.TrimSpace(content) == "" {
		return types.VerificationResult{
			Verdict:     types.VerdictError,
			Explanation: "Could not extract content for analysis.",
			SourceInfo:  sourceInfo,
		}
	}

	return e.assess(ctx, content, sourceInfo)
}

// resolveContent turns the highest-precedence modality into text. A
// non-nil result short-circuits verification with an extraction failure.
func (e *Engine) resolveContent(ctx context.Context, in types.VerificationInput) (content, sourceInfo string, failed *types.VerificationResult) {
	switch {
	case in.Text != "":
		return in.Text, "Direct text input", nil

	case len(in.Document) > 0:
		sourceInfo = "PDF file: " + in.DocumentName
		text, err := ExtractPDF(in.Document)
		if err != nil {
			return "", "", &types.VerificationResult{
				Verdict:     types.VerdictError,
				Explanation: fmt.Sprintf("Error processing PDF: %v", err),
				SourceInfo:  sourceInfo,
			}
		}
		return text, sourceInfo, nil

	default:
		if !ValidateURL(in.URL) {
			return "", "", &types.VerificationResult{
				Verdict:     types.VerdictInvalid,
				Explanation: "Please provide a valid URL starting with http:// or https://",
				SourceInfo:  "Invalid input",
			}
		}
		sourceInfo = "URL: " + in.URL
		text, err := ExtractURL(ctx, e.client, in.URL)
		if err != nil {
			return "", "", &types.VerificationResult{
				Verdict:     types.VerdictError,
				Explanation: fmt.Sprintf("Error fetching URL: %v", err),
				SourceInfo:  sourceInfo,
			}
		}
		return text, sourceInfo, nil
	}
}

// assess submits content for a verdict, honoring the shared AI budget.
func (e *Engine) assess(ctx context.Context, content, sourceInfo string) types.VerificationResult {
	if !e.backend.Configured() {
		return types.VerificationResult{
			Verdict:     types.VerdictError,
			Explanation: "AI service unavailable. Please check your API configuration.",
			SourceInfo:  sourceInfo,
		}
	}
	if !e.limiter.Allow() {
		wait := int(math.Ceil(e.limiter.RetryAfter().Seconds()))
		return types.VerificationResult{
			Verdict:     types.VerdictRateLimited,
			Explanation: fmt.Sprintf("Rate limit reached. Please try again in %d seconds.", wait),
			SourceInfo:  sourceInfo,
		}
	}

	if len(content) > e.cfg.TextBudget {
		content = content[:e.cfg.TextBudget]
	}

	reply, err := e.backend.Generate(ctx, fmt.Sprintf(verdictPrompt, content))
	if err != nil {
		return types.VerificationResult{
			Verdict:     types.VerdictError,
			Explanation: fmt.Sprintf("Error analyzing content: %v", err),
			SourceInfo:  sourceInfo,
		}
	}

	parsed := ai.ParseLabeledReply(reply, "RESULT")
	return types.VerificationResult{
		Verdict:     normalizeVerdict(parsed.Result),
		Confidence:  parsed.Confidence,
		Explanation: parsed.Explanation,
		SourceInfo:  sourceInfo,
	}
}

// normalizeVerdict maps a free-text model verdict onto the discrete
// domain. Models sometimes elaborate on the RESULT line ("True - the
// claim is..."), so matching is by prefix; anything unrecognized,
// including an absent RESULT line, becomes Uncertain.
func normalizeVerdict(s string) types.Verdict {
	switch lower := strings.ToLower(strings.TrimSpace(s)); {
	case strings.HasPrefix(lower, "true"):
		return types.VerdictTrue
	case strings.HasPrefix(lower, "false"):
		return types.VerdictFalse
	default:
		return types.VerdictUncertain
	}
}
