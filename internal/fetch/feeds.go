// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/internal/normalize"
	"github.com/pdiddy/news-engine/pkg/types"
)

// maxFeedBytes caps how much of a syndication document is read.
const maxFeedBytes = 2 << 20

// FeedFetcher pulls and parses one syndication document at a time. The
// HTTP fetch is done here rather than inside gofeed so that every feed
// shares the engine's timeout and User-Agent policy.
type FeedFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFeedFetcher builds a fetcher from the shared HTTP settings.
func NewFeedFetcher(cfg types.HTTPConfig) *FeedFetcher {
	return &FeedFetcher{
		Client:    httputil.NewClient(cfg.Timeout),
		UserAgent: cfg.UserAgent,
	}
}

// Fetch retrieves the feed at endpoint and returns up to maxEntries raw
// records. An unreachable, malformed, or empty feed is an error; the
// orchestrator logs and skips it without failing the tier.
func (f *FeedFetcher) Fetch(ctx context.Context, endpoint string, maxEntries int) ([]normalize.Raw, error) {
	body, err := httputil.Get(ctx, f.Client, endpoint, f.UserAgent, maxFeedBytes)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", endpoint, err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", endpoint, err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed %s has no entries", endpoint)
	}

	sourceName := feed.Title
	if sourceName == "" {
		sourceName = "RSS Source (" + hostOf(endpoint) + ")"
	}

	items := feed.Items
	if maxEntries > 0 && len(items) > maxEntries {
		items = items[:maxEntries]
	}

	raws := make([]normalize.Raw, 0, len(items))
	for _, item := range items {
		raw := normalize.Raw{
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			SourceName:  sourceName,
			URL:         item.Link,
			Published:   item.Published,
		}
		if item.PublishedParsed != nil {
			raw.PublishedAt = *item.PublishedParsed
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}
