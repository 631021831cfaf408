// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/secrets"
	"github.com/pdiddy/news-engine/internal/userstore"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show API configuration and the AI rate-limit window",
	Long: `Status reports which API keys are configured, the AI rate-limit
settings, and, with --user, that user's activity counters.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	geminiKey := secretDefault(secrets.KeyGemini, viper.GetString("gemini_api_key"))
	newsKey := secretDefault(secrets.KeyNewsAPI, viper.GetString("newsapi_api_key"))

	fmt.Printf("AI backend configured:       %v\n", geminiKey != "")
	fmt.Printf("Structured API configured:   %v\n", newsKey != "")

	stats := newLimiter().Stats()
	fmt.Printf("AI rate limit:               %d request(s) per %s\n", stats.MaxRequests, stats.Window)
	fmt.Printf("Window used:                 %d, can request: %v\n", stats.Used, stats.CanRequest)
	if stats.RetryAfter > 0 {
		fmt.Printf("Retry after:                 %s\n", stats.RetryAfter)
	}

	return withUserStore(func(store *userstore.Store, username string) error {
		userStats, err := store.Stats(username)
		if err != nil {
			return err
		}
		fmt.Printf("\nUser %s:\n", username)
		fmt.Printf("  Member since:              %s\n", userStats.MemberSince.Format("2006-01-02"))
		fmt.Printf("  Summaries generated:       %d\n", userStats.SummariesGenerated)
		fmt.Printf("  Fact checks performed:     %d\n", userStats.FactChecksPerformed)
		return nil
	})
}
