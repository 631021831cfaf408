// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/internal/normalize"
	"github.com/pdiddy/news-engine/pkg/types"
)

// newsAPIBase is the structured news API endpoint. Declared as a var so
// tests can substitute an httptest server.
var newsAPIBase = "https://newsapi.org/v2/top-headlines"

const defaultMaxPageSize = 100

// NewsAPIBackend queries the structured news API (tier 0). It gives the
// best country/language filtering, so the orchestrator always tries it
// first when a key is configured.
type NewsAPIBackend struct {
	Client *http.Client
	cfg    types.NewsAPIConfig
}

// NewNewsAPIBackend builds the tier-0 backend from config.
func NewNewsAPIBackend(cfg types.NewsAPIConfig) *NewsAPIBackend {
	return &NewsAPIBackend{
		Client: httputil.NewClient(cfg.Timeout),
		cfg:    cfg,
	}
}

// Configured reports whether an API key is present.
func (b *NewsAPIBackend) Configured() bool { return b.cfg.APIKey != "" }

// Fetch queries top headlines for the request. The country parameter is
// omitted for the "worldwide" pseudo-country; pageSize is clamped to the
// provider maximum.
func (b *NewsAPIBackend) Fetch(ctx context.Context, req types.FetchRequest) ([]normalize.Raw, error) {
	if !b.Configured() {
		return nil, fmt.Errorf("structured news API key not configured")
	}

	pageSize := req.MaxArticles
	maxPage := b.cfg.MaxPageSize
	if maxPage <= 0 {
		maxPage = defaultMaxPageSize
	}
	if pageSize <= 0 || pageSize > maxPage {
		pageSize = maxPage
	}

	params := url.Values{
		"category": {req.Category},
		"language": {req.Language},
		"pageSize": {fmt.Sprintf("%d", pageSize)},
		"sortBy":   {"publishedAt"},
	}
	if req.Country != "" && req.Country != "worldwide" {
		params.Set("country", req.Country)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", b.cfg.APIKey)
	if b.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", b.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, httpReq, 0)
	if err != nil {
		return nil, fmt.Errorf("structured API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("structured API returned HTTP %d", resp.StatusCode)
	}

	var nr newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("parsing structured API response: %w", err)
	}

	raws := make([]normalize.Raw, 0, len(nr.Articles))
	for _, a := range nr.Articles {
		raws = append(raws, normalize.Raw{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			SourceName:  a.Source.Name,
			URL:         a.URL,
			Published:   a.PublishedAt,
		})
	}
	return raws, nil
}

// Structured news API JSON structures.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	PublishedAt string        `json:"publishedAt"`
	URL         string        `json:"url"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
