// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/news-engine/internal/ai"
	"github.com/pdiddy/news-engine/pkg/types"
)

// SentimentAnalysis is the outcome of classifying one text. Score is only
// meaningful on the lexical path; Confidence only on the AI path.
type SentimentAnalysis struct {
	Label       types.SentimentLabel `json:"sentiment" yaml:"sentiment"`
	Score       float64              `json:"score" yaml:"score"`
	Confidence  int                  `json:"confidence" yaml:"confidence"`
	Explanation string               `json:"explanation" yaml:"explanation"`
	AIUsed      bool                 `json:"ai_used" yaml:"ai_used"`
}

const sentimentPrompt = `Analyze the sentiment of the following text. Respond with:
- SENTIMENT: Positive/Negative/Neutral
- CONFIDENCE: (0-100)
- EXPLANATION: Brief explanation of the sentiment analysis

Text: %s`

// ClassifySentiment labels the text Positive, Negative, or Neutral. The
// AI path runs only when enabled in config, the backend is configured,
// and the rate limiter admits the call; every other case, including a
// backend failure mid-call, lands on the lexical path.
func (p *Pipeline) ClassifySentiment(ctx context.Context, text string) SentimentAnalysis {
	if strings.TrimSpace(text) == "" {
		return SentimentAnalysis{
			Label:       types.SentimentNeutral,
			Explanation: "No content to analyze.",
		}
	}

	if p.cfg.AISentiment && p.aiAllowed() {
		prompt := fmt.Sprintf(sentimentPrompt, truncate(text, sentimentBudget))
		if reply, err := p.backend.Generate(ctx, prompt); err == nil {
			parsed := ai.ParseLabeledReply(reply, "SENTIMENT")
			return SentimentAnalysis{
				Label:       normalizeSentimentLabel(parsed.Result),
				Confidence:  parsed.Confidence,
				Explanation: parsed.Explanation,
				AIUsed:      true,
			}
		}
	}

	return LexicalSentiment(text)
}

// LexicalSentiment classifies text by averaged word valence. Polarity
// strictly above 0.1 is Positive, strictly below -0.1 is Negative,
// everything between (inclusive) is Neutral.
func LexicalSentiment(text string) SentimentAnalysis {
	polarity := Polarity(text)
	label := LabelForPolarity(polarity)

	confidence := int(polarity * 100)
	if confidence < 0 {
		confidence = -confidence
	}

	return SentimentAnalysis{
		Label:       label,
		Score:       polarity,
		Confidence:  ai.ClampConfidence(confidence),
		Explanation: fmt.Sprintf("Lexical analysis shows %s sentiment with polarity %.2f", strings.ToLower(string(label)), polarity),
	}
}

// LabelForPolarity applies the classification thresholds to a polarity
// in [-1,1]. The boundaries themselves are Neutral.
func LabelForPolarity(polarity float64) types.SentimentLabel {
	switch {
	case polarity > 0.1:
		return types.SentimentPositive
	case polarity < -0.1:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

// normalizeSentimentLabel maps a free-text model verdict onto the
// three-way domain. Unrecognized labels become Neutral rather than
// propagating model inventions.
func normalizeSentimentLabel(s string) types.SentimentLabel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return types.SentimentPositive
	case "negative":
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}
