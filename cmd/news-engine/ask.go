package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/news-engine/internal/enrich"
	"github.com/pdiddy/news-engine/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a free-form question, optionally grounded in article text",
	Long: `Ask sends a question to the AI backend. With --context or
--context-file the answer is grounded in the given article text; without
context the question is answered directly.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("context", "", "article text to ground the answer in")
	askCmd.Flags().String("context-file", "", "read the grounding text from this file")
	askCmd.Flags().String("model", "", "AI model identifier")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a question to ask")
	}
	question := strings.Join(args, " ")

	contextText, _ := cmd.Flags().GetString("context")
	if path, _ := cmd.Flags().GetString("context-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		contextText = string(data)
	}

	pipeline := enrich.New(types.EnrichmentConfig{
		AIConfig: geminiAIConfig(cmd),
	}, newLimiter())

	fmt.Println(pipeline.Answer(context.Background(), question, contextText))
	return nil
}
