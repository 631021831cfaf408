// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Enrich attaches a card summary and sentiment to each article. The card
// path is fully deterministic unless AI sentiment is enabled; it never
// fails and never drops an article.
func (p *Pipeline) Enrich(ctx context.Context, articles []types.Article) []types.EnrichedArticle {
	enriched := make([]types.EnrichedArticle, 0, len(articles))
	for _, a := range articles {
		full := a.Title + " " + a.Description + " " + a.RawContent
		analysis := p.ClassifySentiment(ctx, full)
		enriched = append(enriched, types.EnrichedArticle{
			Article:        a,
			Summary:        CardSummary(a),
			SentimentLabel: analysis.Label,
			SentimentScore: analysis.Score,
		})
	}
	return enriched
}
