// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources turns a (category, country, language) request into an
// ordered list of source tiers for the fetch orchestrator to try.
package sources

import (
	"strings"

	"github.com/pdiddy/news-engine/pkg/types"
)

// generalCategory is the fallback category inside a locale and worldwide.
const generalCategory = "general"

// Tier is one fallback level: a named group of source candidates that the
// orchestrator attempts together.
type Tier struct {
	Name       string
	Candidates []types.SourceCandidate
}

// Resolver produces source tiers from the locale matrix. The zero value is
// not usable; construct with NewResolver.
type Resolver struct {
	matrix        Matrix
	worldwide     CategoryFeeds
	apiConfigured bool
}

// NewResolver builds a Resolver. The structured API tier is emitted only
// when an API key is configured. A MatrixFile overlay, when set, extends
// the built-in locale matrix.
func NewResolver(cfg types.FetchConfig) (*Resolver, error) {
	matrix := builtinMatrix
	if cfg.MatrixFile != "" {
		merged, err := LoadMatrixOverlay(cfg.MatrixFile, builtinMatrix)
		if err != nil {
			return nil, err
		}
		matrix = merged
	}
	return &Resolver{
		matrix:        matrix,
		worldwide:     worldwideFeeds,
		apiConfigured: cfg.NewsAPI.APIKey != "",
	}, nil
}

// Resolve returns the ordered tiers for the request. The result always
// contains at least one tier with at least one candidate: when the locale
// is unknown the worldwide group stands in, and an unknown category maps to
// the worldwide "general" group. Resolve never fails.
//
// Tier order: structured API (when configured), then the locale feed group,
// then the worldwide feed group. Within one locale the category-specific
// group wins over "general"; groups from different locales are never
// blended.
func (r *Resolver) Resolve(category, country, language string) []Tier {
	category = normalizeCode(category, generalCategory)
	country = normalizeCode(country, "worldwide")
	language = normalizeCode(language, "en")

	var tiers []Tier

	if r.apiConfigured {
		tiers = append(tiers, Tier{
			Name: "structured_api",
			Candidates: []types.SourceCandidate{{
				Kind:     types.KindStructuredAPI,
				Country:  country,
				Language: language,
			}},
		})
	}

	if urls := r.localeFeeds(category, country, language); len(urls) > 0 {
		tiers = append(tiers, feedTier("locale:"+country+"-"+language, urls, country, language))
	}

	tiers = append(tiers, feedTier("worldwide", r.worldwideGroup(category), country, language))
	return tiers
}

// localeFeeds returns the feed group for the locale, or nil when the
// (country, language) pair is absent from the matrix.
func (r *Resolver) localeFeeds(category, country, language string) []string {
	langs, ok := r.matrix[country]
	if !ok {
		return nil
	}
	feeds, ok := langs[language]
	if !ok {
		return nil
	}
	if urls, ok := feeds[category]; ok && len(urls) > 0 {
		return urls
	}
	return feeds[generalCategory]
}

// worldwideGroup returns the worldwide feed group for the category, falling
// back to "general" for unknown categories.
func (r *Resolver) worldwideGroup(category string) []string {
	if urls, ok := r.worldwide[category]; ok && len(urls) > 0 {
		return urls
	}
	return r.worldwide[generalCategory]
}

func feedTier(name string, urls []string, country, language string) Tier {
	t := Tier{Name: name}
	for _, u := range urls {
		t.Candidates = append(t.Candidates, types.SourceCandidate{
			Kind:     types.KindFeed,
			Endpoint: u,
			Country:  country,
			Language: language,
		})
	}
	return t
}

func normalizeCode(s, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	return s
}
