// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Style selects the register of an AI-generated summary.
type Style string

const (
	StyleConcise      Style = "concise"
	StyleDetailed     Style = "detailed"
	StyleBulletPoints Style = "bullet points"
	StyleCasual       Style = "casual"
	StyleFormal       Style = "formal"
)

// styleInstructions is the per-style prompt preamble. %d is the word
// budget.
var styleInstructions = map[Style]string{
	StyleConcise:      "Provide a concise summary of the following news article in %d words or less. Focus on the key facts and main points:",
	StyleDetailed:     "Provide a detailed summary of the following news article in %d words or less. Include background context and important details:",
	StyleBulletPoints: "Summarize the following news article as bullet points in %d words or less. Use • for each point:",
	StyleCasual:       "Summarize the following news article in a casual, conversational tone in %d words or less:",
	StyleFormal:       "Provide a formal, professional summary of the following news article in %d words or less:",
}

// ParseStyle maps a user-supplied style name to a Style. Matching is
// case-insensitive and accepts "bullet-points" and "bullets" for the
// bullet style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "concise":
		return StyleConcise, nil
	case "detailed":
		return StyleDetailed, nil
	case "bullet points", "bullet-points", "bullets":
		return StyleBulletPoints, nil
	case "casual":
		return StyleCasual, nil
	case "formal":
		return StyleFormal, nil
	}
	return "", fmt.Errorf("unknown summary style %q (want one of %s)", s, strings.Join(StyleNames(), ", "))
}

// StyleNames lists the accepted style names, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styleInstructions))
	for s := range styleInstructions {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

// minLongFormWords is the threshold below which summarizing is pointless:
// the content is already shorter than a summary would be.
const minLongFormWords = 30

// Summarize produces a long-form summary of the article in the given
// style. The AI path is used when the backend is configured and the rate
// limiter admits the call; otherwise, and on any backend failure, the
// extractive fallback serves. The second return reports whether the AI
// path produced the summary.
func (p *Pipeline) Summarize(ctx context.Context, article types.Article, style Style) (string, bool) {
	text := strings.TrimSpace(article.CanonicalText)
	if text == "" {
		return "No content to summarize.", false
	}
	if len(strings.Fields(text)) < minLongFormWords {
		// Too short to compress; hand it back verbatim.
		return text, false
	}

	if p.aiAllowed() {
		instruction, ok := styleInstructions[style]
		if !ok {
			instruction = styleInstructions[StyleConcise]
		}
		prompt := fmt.Sprintf(instruction, p.cfg.MaxWords) +
			"\n\nArticle: " + truncate(text, p.cfg.InputBudget)

		if reply, err := p.backend.Generate(ctx, prompt); err == nil && reply != "" {
			return reply, true
		}
	}

	return CardSummary(article), false
}

var bracketedRe = regexp.MustCompile(`\[[^\]]*\]`)

// CardSummary builds a deterministic two-sentence summary from whatever
// text the article carries. It is the card caption on the browse surface
// and the fallback when the AI summary path is unavailable.
func CardSummary(article types.Article) string {
	all := strings.TrimSpace(strings.Join([]string{
		article.Title, article.Description, article.RawContent,
	}, " "))
	if all == "" {
		return "No content available."
	}

	text := strings.TrimSpace(bracketedRe.ReplaceAllString(all, ""))
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "Summary not available."
	}

	if len(sentences) == 1 {
		words := strings.Fields(sentences[0])
		if len(words) > 15 {
			mid := len(words) / 2
			return strings.Join(words[:mid], " ") + ". " + strings.Join(words[mid:], " ") + "."
		}
		return sentences[0] + "."
	}
	return sentences[0] + ". " + sentences[1] + "."
}

var sentenceEndRe = regexp.MustCompile(`[.!?]+`)

// splitSentences breaks text on terminal punctuation and drops fragments
// of 10 characters or fewer, which are typically initials, ellipsis
// leftovers, or truncation markers.
func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceEndRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) > 10 {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
