// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the news-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the news-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "news-engine",
	Short: "Fetch, summarize, and verify news from tiered sources",
	Long: `news-engine aggregates news from a structured API and per-locale RSS
feeds, normalizes the articles, and enriches them with AI summaries and
sentiment. It can also verify the factual accuracy of text, PDF documents,
and web pages.

Each stage is a subcommand: fetch, summarize, sentiment, verify, ask, user,
sources, and status.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./news-engine.yaml or ~/.config/news-engine/config.yaml)")
	rootCmd.PersistentFlags().String("user", "", "apply this user's stored preferences and record activity")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the user database (default data/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("news-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "news-engine"))
		}
	}

	viper.SetEnvPrefix("NEWS_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
