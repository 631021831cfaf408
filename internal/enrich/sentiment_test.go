package enrich

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pdiddy/news-engine/pkg/types"
)

func TestLabelForPolarity(t *testing.T) {
	tests := []struct {
		polarity float64
		want     types.SentimentLabel
	}{
		{0.5, types.SentimentPositive},
		{0.11, types.SentimentPositive},
		{0.1, types.SentimentNeutral}, // boundary is neutral
		{0.0, types.SentimentNeutral},
		{-0.1, types.SentimentNeutral}, // boundary is neutral
		{-0.11, types.SentimentNegative},
		{-0.8, types.SentimentNegative},
	}
	for _, tt := range tests {
		if got := LabelForPolarity(tt.polarity); got != tt.want {
			t.Errorf("LabelForPolarity(%v) = %q, want %q", tt.polarity, got, tt.want)
		}
	}
}

func TestPolarity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no recognized words", "the quarterly report was published on schedule", 0},
		{"single positive", "an excellent outcome", 1.0},
		{"single negative", "a terrible outcome", -1.0},
		{"averaged", "good news and bad news", 0}, // 0.7 + (-0.7)
		{"negation flips", "not good at all", -0.7},
		{"punctuation stripped", "Excellent! Truly excellent.", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Polarity(tt.text); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Polarity(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLexicalSentiment(t *testing.T) {
	got := LexicalSentiment("a remarkable breakthrough and a great success")
	if got.Label != types.SentimentPositive {
		t.Errorf("Label = %q, want Positive", got.Label)
	}
	if got.Score <= 0.1 {
		t.Errorf("Score = %v, want above positive threshold", got.Score)
	}
	if got.AIUsed {
		t.Error("AIUsed = true on lexical path")
	}
	if !strings.Contains(got.Explanation, "positive sentiment") {
		t.Errorf("Explanation = %q", got.Explanation)
	}

	got = LexicalSentiment("war deaths and a terrible crisis")
	if got.Label != types.SentimentNegative {
		t.Errorf("Label = %q, want Negative", got.Label)
	}

	got = LexicalSentiment("the meeting is scheduled for noon")
	if got.Label != types.SentimentNeutral || got.Score != 0 {
		t.Errorf("got %+v, want Neutral with zero score", got)
	}
}

func TestLexicalConfidenceTracksPolarity(t *testing.T) {
	got := LexicalSentiment("an excellent outcome") // polarity 1.0
	if got.Confidence != 100 {
		t.Errorf("Confidence = %d, want 100", got.Confidence)
	}
	got = LexicalSentiment("good news") // polarity 0.7
	if got.Confidence != 70 {
		t.Errorf("Confidence = %d, want 70", got.Confidence)
	}
}

func TestClassifySentimentEmpty(t *testing.T) {
	p := newTestPipeline(&stubBackend{configured: true}, types.EnrichmentConfig{AISentiment: true})
	got := p.ClassifySentiment(context.Background(), "  \n ")
	if got.Label != types.SentimentNeutral {
		t.Errorf("Label = %q, want Neutral", got.Label)
	}
	if got.Explanation != "No content to analyze." {
		t.Errorf("Explanation = %q", got.Explanation)
	}
}

func TestClassifySentimentAIPath(t *testing.T) {
	b := &stubBackend{
		configured: true,
		reply:      "SENTIMENT: Positive\nCONFIDENCE: 88\nEXPLANATION: Upbeat and celebratory tone.",
	}
	p := newTestPipeline(b, types.EnrichmentConfig{AISentiment: true})

	got := p.ClassifySentiment(context.Background(), "a terrible crisis") // lexical would say Negative
	if !got.AIUsed {
		t.Fatal("AIUsed = false, want AI path")
	}
	if got.Label != types.SentimentPositive {
		t.Errorf("Label = %q, want AI verdict", got.Label)
	}
	if got.Confidence != 88 {
		t.Errorf("Confidence = %d, want 88", got.Confidence)
	}
	if got.Explanation != "Upbeat and celebratory tone." {
		t.Errorf("Explanation = %q", got.Explanation)
	}
	if len(b.prompts) != 1 || !strings.Contains(b.prompts[0], "Analyze the sentiment") {
		t.Errorf("prompts = %v", b.prompts)
	}
}

func TestClassifySentimentAIDisabled(t *testing.T) {
	b := &stubBackend{configured: true, reply: "SENTIMENT: Positive"}
	p := newTestPipeline(b, types.EnrichmentConfig{AISentiment: false})

	got := p.ClassifySentiment(context.Background(), "a terrible crisis")
	if got.AIUsed {
		t.Error("AIUsed = true with AI sentiment disabled")
	}
	if got.Label != types.SentimentNegative {
		t.Errorf("Label = %q, want lexical Negative", got.Label)
	}
	if len(b.prompts) != 0 {
		t.Errorf("generate calls = %d, want 0", len(b.prompts))
	}
}

func TestClassifySentimentAIErrorFallsBackLexical(t *testing.T) {
	b := &stubBackend{configured: true, err: fmt.Errorf("upstream 500")}
	p := newTestPipeline(b, types.EnrichmentConfig{AISentiment: true})

	got := p.ClassifySentiment(context.Background(), "a wonderful recovery")
	if got.AIUsed {
		t.Error("AIUsed = true after backend error")
	}
	if got.Label != types.SentimentPositive {
		t.Errorf("Label = %q, want lexical Positive", got.Label)
	}
}

func TestClassifySentimentUnrecognizedAILabel(t *testing.T) {
	b := &stubBackend{configured: true, reply: "SENTIMENT: Ambivalent\nCONFIDENCE: 60"}
	p := newTestPipeline(b, types.EnrichmentConfig{AISentiment: true})

	got := p.ClassifySentiment(context.Background(), "some text about events")
	if got.Label != types.SentimentNeutral {
		t.Errorf("Label = %q, want Neutral for unrecognized verdict", got.Label)
	}
}

func TestClassifySentimentTruncatesInput(t *testing.T) {
	b := &stubBackend{configured: true, reply: "SENTIMENT: Neutral"}
	p := newTestPipeline(b, types.EnrichmentConfig{AISentiment: true})

	long := strings.Repeat("steady unremarkable proceedings continued apace today ", 100)
	p.ClassifySentiment(context.Background(), long)
	if len(b.prompts) != 1 {
		t.Fatal("expected one generate call")
	}
	if len(b.prompts[0]) > len(sentimentPrompt)+sentimentBudget {
		t.Errorf("prompt length %d exceeds sentiment budget", len(b.prompts[0]))
	}
}
