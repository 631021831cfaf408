// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch walks the source tiers produced by the resolver and
// returns canonical articles. The first tier that yields anything ends
// the walk; failures inside a tier degrade to that source's empty result
// and never escape the orchestrator.
package fetch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/news-engine/internal/normalize"
	"github.com/pdiddy/news-engine/internal/sources"
	"github.com/pdiddy/news-engine/pkg/types"
)

const (
	defaultMaxArticles = 10
	hardMaxArticles    = 15
	defaultFeedWorkers = 3
)

// apiBackend is the tier-0 interface, satisfied by NewsAPIBackend and by
// test doubles.
type apiBackend interface {
	Configured() bool
	Fetch(ctx context.Context, req types.FetchRequest) ([]normalize.Raw, error)
}

// feedBackend fetches a single syndication document.
type feedBackend interface {
	Fetch(ctx context.Context, endpoint string, maxEntries int) ([]normalize.Raw, error)
}

// Orchestrator executes source tiers in resolver order.
type Orchestrator struct {
	resolver *sources.Resolver
	api      apiBackend
	feeds    feedBackend
	workers  int
}

// New builds an orchestrator from config. It fails only when the locale
// matrix overlay file cannot be loaded.
func New(cfg types.FetchConfig) (*Orchestrator, error) {
	resolver, err := sources.NewResolver(cfg)
	if err != nil {
		return nil, err
	}

	feedCfg := cfg.HTTPConfig
	workers := cfg.FeedWorkers
	if workers <= 0 {
		workers = defaultFeedWorkers
	}

	return &Orchestrator{
		resolver: resolver,
		api:      NewNewsAPIBackend(cfg.NewsAPI),
		feeds:    NewFeedFetcher(feedCfg),
		workers:  workers,
	}, nil
}

// Fetch resolves tiers for the request and executes them in order,
// stopping at the first tier that returns any articles. An empty slice is
// a valid outcome meaning no source had content; it is not an error.
// Source failures are reported as warnings on w.
func (o *Orchestrator) Fetch(ctx context.Context, req types.FetchRequest, w io.Writer) []types.Article {
	req.MaxArticles = clampMax(req.MaxArticles)

	tiers := o.resolver.Resolve(req.Category, req.Country, req.Language)
	for _, tier := range tiers {
		articles := o.runTier(ctx, tier, req, w)
		if len(articles) > 0 {
			if len(articles) > req.MaxArticles {
				articles = articles[:req.MaxArticles]
			}
			fmt.Fprintf(w, "tier %s returned %d article(s)\n", tier.Name, len(articles))
			return articles
		}
		fmt.Fprintf(w, "tier %s empty, trying next\n", tier.Name)
	}
	return nil
}

// runTier attempts every candidate in one tier and aggregates the results.
// Structured-API tiers contain a single candidate; a non-empty response
// short-circuits the whole fetch, so no feed is ever requested after a
// successful API call.
func (o *Orchestrator) runTier(ctx context.Context, tier sources.Tier, req types.FetchRequest, w io.Writer) []types.Article {
	if len(tier.Candidates) > 0 && tier.Candidates[0].Kind == types.KindStructuredAPI {
		raws, err := o.api.Fetch(ctx, req)
		if err != nil {
			fmt.Fprintf(w, "warning: structured API failed: %v\n", err)
			return nil
		}
		return canonicalizeAll(raws)
	}
	return o.runFeedTier(ctx, tier, req, w)
}

// runFeedTier fetches all feeds in the tier under a bounded worker pool.
// One feed's timeout or parse error is logged and skipped; its siblings'
// results are kept. Results keep candidate order regardless of completion
// order.
func (o *Orchestrator) runFeedTier(ctx context.Context, tier sources.Tier, req types.FetchRequest, w io.Writer) []types.Article {
	type job struct {
		idx      int
		endpoint string
	}
	type result struct {
		idx  int
		raws []normalize.Raw
		err  error
	}

	jobs := make(chan job)
	results := make(chan result, len(tier.Candidates))

	workers := o.workers
	if workers > len(tier.Candidates) {
		workers = len(tier.Candidates)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				raws, err := o.feeds.Fetch(ctx, j.endpoint, req.MaxArticles)
				results <- result{idx: j.idx, raws: raws, err: err}
			}
		}()
	}

	for i, c := range tier.Candidates {
		jobs <- job{idx: i, endpoint: c.Endpoint}
	}
	close(jobs)
	wg.Wait()
	close(results)

	perFeed := make([][]normalize.Raw, len(tier.Candidates))
	for r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "warning: feed skipped: %v\n", r.err)
			continue
		}
		perFeed[r.idx] = r.raws
	}

	var all []normalize.Raw
	for _, raws := range perFeed {
		all = append(all, raws...)
	}
	return canonicalizeAll(all)
}

func canonicalizeAll(raws []normalize.Raw) []types.Article {
	if len(raws) == 0 {
		return nil
	}
	articles := make([]types.Article, 0, len(raws))
	for _, raw := range raws {
		articles = append(articles, normalize.Canonicalize(raw))
	}
	return articles
}

func clampMax(n int) int {
	if n <= 0 {
		return defaultMaxArticles
	}
	if n > hardMaxArticles {
		return hardMaxArticles
	}
	return n
}
