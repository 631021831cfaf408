// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai wraps the generative AI API behind a small Backend interface
// so every AI-path component can accept a mock in tests.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/pkg/types"
)

// Backend generates free text from a single pre-formatted prompt. The
// reply is expected to follow a labeled-line convention but callers must
// parse it tolerantly; compliance is not guaranteed.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no API key is available. Callers map
// it to a typed service-unavailable result instead of propagating it.
var ErrNotConfigured = errors.New("ai backend not configured")

// geminiAPIBase is the Gemini generateContent endpoint prefix. Package-level
// var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

const defaultModel = "gemini-1.5-flash"

// GeminiBackend calls the Gemini generateContent REST API.
type GeminiBackend struct {
	APIKey     string
	Model      string
	Client     *http.Client
	MaxRetries int
}

// NewGemini builds a backend from config. The returned backend reports
// ErrNotConfigured from Generate when the key is absent, so construction
// never fails.
func NewGemini(cfg types.AIConfig) *GeminiBackend {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiBackend{
		APIKey:     cfg.APIKey,
		Model:      model,
		Client:     httputil.NewClient(0),
		MaxRetries: cfg.MaxRetries,
	}
}

// Configured reports whether an API key is present.
func (g *GeminiBackend) Configured() bool { return g.APIKey != "" }

// Gemini generateContent JSON structures.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the model's text, trimmed. Rate
// limit responses (HTTP 429) are retried with backoff; any other failure
// is returned for the caller to fold into its fallback path.
func (g *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", ErrNotConfigured
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = httputil.NewClient(0)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, g.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Gemini response: %w", err)
	}

	for _, cand := range gResp.Candidates {
		var parts []string
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				parts = append(parts, p.Text)
			}
		}
		if len(parts) > 0 {
			return strings.TrimSpace(strings.Join(parts, "")), nil
		}
	}

	return "", fmt.Errorf("Gemini API returned no text candidates")
}
