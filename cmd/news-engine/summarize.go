// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/enrich"
	"github.com/pdiddy/news-engine/internal/normalize"
	"github.com/pdiddy/news-engine/internal/userstore"
	"github.com/pdiddy/news-engine/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text]",
	Short: "Summarize article text in a chosen style",
	Long: `Summarize produces a summary of the given text. Five styles are
supported: concise, detailed, bullet points, casual, and formal. When the
AI backend is unavailable or the rate limit is exhausted, a deterministic
extractive summary serves instead.

Text is taken from the arguments, from --file, or from stdin when neither
is given.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("style", "", "summary style (default concise, or the user's stored preference)")
	summarizeCmd.Flags().Int("max-words", 0, "requested summary length in words (default 100)")
	summarizeCmd.Flags().String("file", "", "read the text from this file")
	summarizeCmd.Flags().String("model", "", "AI model identifier")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	text, err := textFromInput(cmd, args)
	if err != nil {
		return err
	}

	styleName, _ := cmd.Flags().GetString("style")
	if styleName == "" {
		err := withUserStore(func(store *userstore.Store, username string) error {
			prefs, err := store.Preferences(username)
			if err != nil {
				return err
			}
			styleName = prefs.SummaryStyle
			return nil
		})
		if err != nil {
			return err
		}
	}
	style, err := enrich.ParseStyle(styleName)
	if err != nil {
		return err
	}

	maxWords, _ := cmd.Flags().GetInt("max-words")
	pipeline := enrich.New(types.EnrichmentConfig{
		AIConfig:    geminiAIConfig(cmd),
		MaxWords:    maxWords,
		InputBudget: viper.GetInt("enrichment.input_budget"),
	}, newLimiter())

	article := normalize.Canonicalize(normalize.Raw{Content: text})
	summary, usedAI := pipeline.Summarize(context.Background(), article, style)
	if !usedAI {
		fmt.Fprintln(os.Stderr, "note: extractive summary (AI path unavailable)")
	}
	fmt.Println(summary)

	recordActivity(func(store *userstore.Store, username string) error {
		return store.RecordSummary(username)
	})
	return nil
}

// textFromInput resolves the text operand: arguments first, then --file,
// then stdin.
func textFromInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no text given: pass it as an argument, via --file, or on stdin")
	}
	return string(data), nil
}
