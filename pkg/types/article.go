// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared value types and configuration structs
// used across the news-engine stages.
package types

import "time"

// Article is the canonical representation of one news story, produced by
// the normalizer regardless of which provider supplied the raw record.
type Article struct {
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description" yaml:"description"`
	RawContent    string    `json:"raw_content,omitempty" yaml:"raw_content,omitempty"`
	CanonicalText string    `json:"canonical_text" yaml:"canonical_text"`
	SourceName    string    `json:"source_name" yaml:"source_name"`
	PublishedAt   time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	URL           string    `json:"url" yaml:"url"`
}

// FetchRequest holds the parameters for one fetch operation. Values are
// fixed at construction; the orchestrator never mutates a request.
type FetchRequest struct {
	Category    string `json:"category" yaml:"category"`
	Country     string `json:"country" yaml:"country"`
	Language    string `json:"language" yaml:"language"`
	MaxArticles int    `json:"max_articles" yaml:"max_articles"`
}

// SourceKind identifies how a source candidate is queried.
type SourceKind int

const (
	// KindStructuredAPI is a JSON news API queried with category, country,
	// and language parameters.
	KindStructuredAPI SourceKind = iota
	// KindFeed is a pull-based syndication document (RSS or Atom).
	KindFeed
)

func (k SourceKind) String() string {
	switch k {
	case KindStructuredAPI:
		return "structured_api"
	case KindFeed:
		return "feed"
	default:
		return "unknown"
	}
}

// SourceCandidate is one endpoint the orchestrator may try. Candidates are
// produced by the resolver in tier order and consumed exactly once.
type SourceCandidate struct {
	Kind     SourceKind `json:"kind" yaml:"kind"`
	Endpoint string     `json:"endpoint" yaml:"endpoint"`
	Country  string     `json:"country" yaml:"country"`
	Language string     `json:"language" yaml:"language"`
}

// SentimentLabel is the three-way sentiment domain.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// EnrichedArticle wraps an Article with its summary and sentiment. It is
// immutable after the enrichment pipeline produces it.
type EnrichedArticle struct {
	Article Article `json:"article" yaml:"article"`

	Summary        string         `json:"summary" yaml:"summary"`
	SentimentLabel SentimentLabel `json:"sentiment" yaml:"sentiment"`

	// SentimentScore is the lexical polarity in [-1,1]. It is only set on
	// the lexical path; the AI path reports confidence instead.
	SentimentScore float64 `json:"sentiment_score" yaml:"sentiment_score"`
}
