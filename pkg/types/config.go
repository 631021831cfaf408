package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "news-engine/0.1"). URL verification overrides this with a
	// browser-like identity because many news sites reject bot agents.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// NewsAPIConfig holds settings for the structured news API (tier 0).
type NewsAPIConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the structured API. When empty the
	// structured tier is skipped entirely.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxPageSize is the provider's page size cap (default 100). Requested
	// article counts are clamped to it.
	MaxPageSize int `json:"max_page_size" yaml:"max_page_size"`
}

// FetchConfig holds settings for the fetch orchestrator.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	NewsAPI NewsAPIConfig `json:"news_api" yaml:"news_api"`

	// MaxArticles caps how many articles one fetch returns (default 10,
	// hard cap 15).
	MaxArticles int `json:"max_articles" yaml:"max_articles"`

	// FeedWorkers bounds how many feeds in one tier are fetched
	// concurrently (default 3).
	FeedWorkers int `json:"feed_workers" yaml:"feed_workers"`

	// MatrixFile optionally overlays the built-in locale matrix with
	// feed groups loaded from a YAML file.
	MatrixFile string `json:"matrix_file,omitempty" yaml:"matrix_file,omitempty"`
}

// AIConfig holds shared settings for stages that call the generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-1.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. When empty every
	// AI-backed operation degrades to its deterministic fallback or a
	// typed service-unavailable result.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for rate-limited API
	// responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// RateLimitConfig bounds AI calls in a rolling window.
type RateLimitConfig struct {
	// MaxRequests is the number of AI calls allowed per window (default 10,
	// the free-tier per-minute quota).
	MaxRequests int `json:"max_requests" yaml:"max_requests"`

	// Window is the rolling window length (default 60s).
	Window time.Duration `json:"window" yaml:"window"`
}

// EnrichmentConfig holds settings for summarization and sentiment.
type EnrichmentConfig struct {
	AIConfig `yaml:",inline"`

	// MaxWords bounds the requested summary length (default 100).
	MaxWords int `json:"max_words" yaml:"max_words"`

	// InputBudget caps how many characters of article text are submitted
	// to the AI backend (default 3000).
	InputBudget int `json:"input_budget" yaml:"input_budget"`

	// AISentiment enables the AI sentiment path; the lexical path remains
	// the fallback either way.
	AISentiment bool `json:"ai_sentiment" yaml:"ai_sentiment"`
}

// VerificationConfig holds settings for the verification engine.
type VerificationConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// TextBudget caps how many characters of extracted text are submitted
	// for a verdict (default 2000).
	TextBudget int `json:"text_budget" yaml:"text_budget"`
}

// UserStoreConfig holds settings for the user preference/activity store.
type UserStoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch        FetchConfig        `json:"fetch" yaml:"fetch"`
	Enrichment   EnrichmentConfig   `json:"enrichment" yaml:"enrichment"`
	Verification VerificationConfig `json:"verification" yaml:"verification"`
	RateLimit    RateLimitConfig    `json:"rate_limit" yaml:"rate_limit"`
	UserStore    UserStoreConfig    `json:"user_store" yaml:"user_store"`
}
