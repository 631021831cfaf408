// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/secrets"
	"github.com/pdiddy/news-engine/internal/sources"
	"github.com/pdiddy/news-engine/pkg/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported locales and preview resolved source tiers",
	Long: `Sources lists the supported countries, languages, and categories. With
--category/--country/--language it previews the exact source tiers the
fetch command would try, in order.`,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().String("category", "", "preview tiers for this category")
	sourcesCmd.Flags().String("country", "", "preview tiers for this country")
	sourcesCmd.Flags().String("language", "", "preview tiers for this language")
	sourcesCmd.Flags().String("api-key", "", "structured news API key (overrides secrets)")
	sourcesCmd.Flags().String("matrix-file", "", "YAML overlay for the locale feed matrix")

	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	country, _ := cmd.Flags().GetString("country")
	language, _ := cmd.Flags().GetString("language")

	if category == "" && country == "" && language == "" {
		printCatalog("Countries", sources.Countries())
		printCatalog("Languages", sources.Languages())
		printCatalog("Categories", sources.Categories())
		return nil
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	matrixFile, _ := cmd.Flags().GetString("matrix-file")
	if matrixFile == "" {
		matrixFile = viper.GetString("fetch.matrix_file")
	}

	cfg := types.FetchConfig{MatrixFile: matrixFile}
	cfg.NewsAPI.APIKey = secretDefault(secrets.KeyNewsAPI, apiKey)

	resolver, err := sources.NewResolver(cfg)
	if err != nil {
		return err
	}

	for _, tier := range resolver.Resolve(category, country, language) {
		fmt.Printf("tier %s:\n", tier.Name)
		for _, c := range tier.Candidates {
			fmt.Printf("  %-14s %s\n", c.Kind, c.Endpoint)
		}
	}
	return nil
}

func printCatalog(title string, entries map[string]string) {
	fmt.Printf("%s:\n", title)
	codes := make([]string, 0, len(entries))
	for code := range entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("  %-10s %s\n", code, entries[code])
	}
	fmt.Println()
}
