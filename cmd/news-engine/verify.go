// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/userstore"
	"github.com/pdiddy/news-engine/internal/verify"
	"github.com/pdiddy/news-engine/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Assess the factual accuracy of text, a PDF, or a web page",
	Long: `Verify submits content for a factual-accuracy verdict (True, False, or
Uncertain, with confidence and an explanation). Provide exactly one of
--text, --pdf, or --url; when several are given, text wins over the PDF,
which wins over the URL.

The outcome is always a verdict: extraction failures, an unconfigured AI
backend, and rate limiting are reported inside the result rather than as
command errors.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("text", "", "text to verify")
	verifyCmd.Flags().String("pdf", "", "path to a PDF document to verify")
	verifyCmd.Flags().String("url", "", "web page to fetch and verify")
	verifyCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	verifyCmd.Flags().String("model", "", "AI model identifier")
	verifyCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	rawURL, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	input := types.VerificationInput{Text: text, URL: rawURL}
	if pdfPath != "" {
		doc, err := os.ReadFile(pdfPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", pdfPath, err)
		}
		input.Document = doc
		input.DocumentName = filepath.Base(pdfPath)
	}

	cfg := types.VerificationConfig{
		AIConfig:   geminiAIConfig(cmd),
		TextBudget: viper.GetInt("verification.text_budget"),
	}
	cfg.Timeout = timeout

	engine := verify.New(cfg, newLimiter())
	result := engine.Verify(context.Background(), input)

	recordActivity(func(store *userstore.Store, username string) error {
		return store.RecordFactCheck(username)
	})

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Verdict: %s\n", result.Verdict)
	fmt.Printf("Confidence: %d\n", result.Confidence)
	fmt.Printf("Source: %s\n", result.SourceInfo)
	fmt.Printf("Explanation: %s\n", result.Explanation)
	return nil
}
