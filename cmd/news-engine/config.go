// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/ratelimit"
	"github.com/pdiddy/news-engine/internal/secrets"
	"github.com/pdiddy/news-engine/internal/userstore"
	"github.com/pdiddy/news-engine/pkg/types"
)

// geminiAIConfig assembles the generative AI settings from the command's
// --model flag, the config file, and the loaded secrets.
func geminiAIConfig(cmd *cobra.Command) types.AIConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("ai.model")
	}
	return types.AIConfig{
		Model:      model,
		APIKey:     secretDefault(secrets.KeyGemini, viper.GetString("gemini_api_key")),
		MaxRetries: viper.GetInt("ai.max_retries"),
	}
}

// newLimiter builds the per-process AI rate limiter from config.
func newLimiter() *ratelimit.Limiter {
	return ratelimit.New(types.RateLimitConfig{
		MaxRequests: viper.GetInt("rate_limit.max_requests"),
		Window:      viper.GetDuration("rate_limit.window"),
	})
}

func userStoreConfig() types.UserStoreConfig {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("user_store.data_dir")
	}
	return types.UserStoreConfig{DataDir: dataDir}
}

// activeUser returns the username from the persistent --user flag, or ""
// when no user context was requested.
func activeUser() string {
	name, _ := rootCmd.PersistentFlags().GetString("user")
	return name
}

// withUserStore opens the store, runs fn, and closes it again. It is a
// no-op when no --user was given.
func withUserStore(fn func(store *userstore.Store, username string) error) error {
	username := activeUser()
	if username == "" {
		return nil
	}
	store, err := userstore.NewStore(userStoreConfig())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store, username)
}

// recordActivity bumps a user counter without failing the command; a
// stats miss is worth a warning, not a non-zero exit.
func recordActivity(record func(store *userstore.Store, username string) error) {
	err := withUserStore(record)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording activity: %v\n", err)
	}
}
