// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/news-engine/internal/enrich"
	"github.com/pdiddy/news-engine/pkg/types"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [text]",
	Short: "Classify the sentiment of text",
	Long: `Sentiment labels text Positive, Negative, or Neutral. The default path
is a deterministic lexical analysis; --ai asks the AI backend instead,
falling back to the lexical path when it is unavailable.`,
	RunE: runSentiment,
}

func init() {
	sentimentCmd.Flags().Bool("ai", false, "use the AI sentiment path")
	sentimentCmd.Flags().String("file", "", "read the text from this file")
	sentimentCmd.Flags().String("model", "", "AI model identifier")

	rootCmd.AddCommand(sentimentCmd)
}

func runSentiment(cmd *cobra.Command, args []string) error {
	text, err := textFromInput(cmd, args)
	if err != nil {
		return err
	}

	useAI, _ := cmd.Flags().GetBool("ai")
	pipeline := enrich.New(types.EnrichmentConfig{
		AIConfig:    geminiAIConfig(cmd),
		AISentiment: useAI,
	}, newLimiter())

	analysis := pipeline.ClassifySentiment(context.Background(), text)

	fmt.Printf("Sentiment: %s\n", analysis.Label)
	if analysis.AIUsed {
		fmt.Printf("Confidence: %d\n", analysis.Confidence)
	} else {
		fmt.Printf("Polarity: %.2f\n", analysis.Score)
	}
	fmt.Printf("Explanation: %s\n", analysis.Explanation)
	return nil
}
