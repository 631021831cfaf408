// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/news-engine/internal/enrich"
	"github.com/pdiddy/news-engine/internal/fetch"
	"github.com/pdiddy/news-engine/internal/secrets"
	"github.com/pdiddy/news-engine/internal/userstore"
	"github.com/pdiddy/news-engine/pkg/types"
)

const defaultUserAgent = "news-engine/0.1"

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch headlines from tiered news sources",
	Long: `Fetch resolves source tiers for the requested category and locale,
queries them in order, and prints the articles with a card summary and
sentiment label. The structured API tier is used when a key is configured;
RSS tiers serve otherwise, falling back to worldwide feeds when the locale
has nothing.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("category", "general", "news category (see 'news-engine sources')")
	fetchCmd.Flags().String("country", "worldwide", "country code or 'worldwide'")
	fetchCmd.Flags().String("language", "en", "language code")
	fetchCmd.Flags().Int("max", 0, "maximum articles to return (default 10, cap 15)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	fetchCmd.Flags().Int("workers", 0, "concurrent feed fetches per tier (default 3)")
	fetchCmd.Flags().String("api-key", "", "structured news API key (overrides secrets)")
	fetchCmd.Flags().String("matrix-file", "", "YAML overlay for the locale feed matrix")
	fetchCmd.Flags().Bool("ai-sentiment", false, "use the AI sentiment path for article cards")
	fetchCmd.Flags().String("model", "", "AI model identifier")
	fetchCmd.Flags().Bool("json", false, "output articles as JSON")
	fetchCmd.Flags().String("save", "", "also write the fetched articles to a YAML file")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	req, err := fetchRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	workers, _ := cmd.Flags().GetInt("workers")
	apiKey, _ := cmd.Flags().GetString("api-key")
	matrixFile, _ := cmd.Flags().GetString("matrix-file")
	if matrixFile == "" {
		matrixFile = viper.GetString("fetch.matrix_file")
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		FeedWorkers: workers,
		MatrixFile:  matrixFile,
	}
	cfg.NewsAPI.APIKey = secretDefault(secrets.KeyNewsAPI, apiKey)
	cfg.NewsAPI.MaxPageSize = viper.GetInt("fetch.max_page_size")
	cfg.NewsAPI.HTTPConfig = cfg.HTTPConfig

	orchestrator, err := fetch.New(cfg)
	if err != nil {
		return err
	}

	articles := orchestrator.Fetch(context.Background(), req, os.Stderr)
	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	aiSentiment, _ := cmd.Flags().GetBool("ai-sentiment")
	pipeline := enrich.New(types.EnrichmentConfig{
		AIConfig:    geminiAIConfig(cmd),
		AISentiment: aiSentiment,
	}, newLimiter())
	enriched := pipeline.Enrich(context.Background(), articles)

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := saveArticles(savePath, enriched); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d article(s) to %s\n", len(enriched), savePath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFetchOutput(enriched, jsonOutput)
}

// fetchRequestFromFlags builds the request, applying the user's stored
// preferences for any locale flag the command line left untouched.
func fetchRequestFromFlags(cmd *cobra.Command) (types.FetchRequest, error) {
	category, _ := cmd.Flags().GetString("category")
	country, _ := cmd.Flags().GetString("country")
	language, _ := cmd.Flags().GetString("language")
	maxArticles, _ := cmd.Flags().GetInt("max")

	err := withUserStore(func(store *userstore.Store, username string) error {
		prefs, err := store.Preferences(username)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("category") {
			category = prefs.DefaultCategory
		}
		if !cmd.Flags().Changed("country") {
			country = prefs.DefaultCountry
		}
		if !cmd.Flags().Changed("language") {
			language = prefs.DefaultLanguage
		}
		return nil
	})
	if err != nil {
		return types.FetchRequest{}, err
	}

	return types.FetchRequest{
		Category:    category,
		Country:     country,
		Language:    language,
		MaxArticles: maxArticles,
	}, nil
}

func saveArticles(path string, articles []types.EnrichedArticle) error {
	data, err := yaml.Marshal(articles)
	if err != nil {
		return fmt.Errorf("marshaling articles: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func formatFetchOutput(articles []types.EnrichedArticle, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	for i, a := range articles {
		date := "unknown date"
		if !a.Article.PublishedAt.IsZero() {
			date = a.Article.PublishedAt.Format(time.DateOnly)
		}
		fmt.Printf("%2d. [%s] %s\n", i+1, a.SentimentLabel, a.Article.Title)
		fmt.Printf("    %s · %s\n", a.Article.SourceName, date)
		fmt.Printf("    %s\n", a.Summary)
		if a.Article.URL != "" {
			fmt.Printf("    %s\n", a.Article.URL)
		}
		if i < len(articles)-1 {
			fmt.Println(strings.Repeat("-", 72))
		}
	}
	fmt.Printf("\n%d article(s)\n", len(articles))
	return nil
}
