package verify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/internal/ratelimit"
	"github.com/pdiddy/news-engine/pkg/types"
)

type stubBackend struct {
	configured bool
	reply      string
	err        error
	prompts    []string
}

func (s *stubBackend) Configured() bool { return s.configured }

func (s *stubBackend) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestEngine(b aiBackend) *Engine {
	return &Engine{
		backend: b,
		limiter: ratelimit.New(types.RateLimitConfig{}),
		client:  httputil.NewClient(0),
		cfg:     types.VerificationConfig{TextBudget: defaultTextBudget},
	}
}

func TestVerifyNoInput(t *testing.T) {
	b := &stubBackend{configured: true}
	e := newTestEngine(b)

	got := e.Verify(context.Background(), types.VerificationInput{})
	if got.Verdict != types.VerdictInvalid {
		t.Errorf("Verdict = %q, want Invalid", got.Verdict)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", got.Confidence)
	}
	if got.SourceInfo != "No input provided" {
		t.Errorf("SourceInfo = %q", got.SourceInfo)
	}
	if len(b.prompts) != 0 {
		t.Errorf("generate calls = %d, want 0", len(b.prompts))
	}
}

func TestVerifyDirectText(t *testing.T) {
	b := &stubBackend{
		configured: true,
		reply:      "RESULT: True\nCONFIDENCE: 85\nEXPLANATION: Consistent with the public record.",
	}
	e := newTestEngine(b)

	got := e.Verify(context.Background(), types.VerificationInput{Text: "The treaty was signed in 1987."})
	if got.Verdict != types.VerdictTrue {
		t.Errorf("Verdict = %q, want True", got.Verdict)
	}
	if got.Confidence != 85 {
		t.Errorf("Confidence = %d, want 85", got.Confidence)
	}
	if got.Explanation != "Consistent with the public record." {
		t.Errorf("Explanation = %q", got.Explanation)
	}
	if got.SourceInfo != "Direct text input" {
		t.Errorf("SourceInfo = %q", got.SourceInfo)
	}
	if len(b.prompts) != 1 || !strings.Contains(b.prompts[0], "The treaty was signed in 1987.") {
		t.Errorf("prompts = %v", b.prompts)
	}
}

func TestVerifyTextTakesPrecedence(t *testing.T) {
	b := &stubBackend{configured: true, reply: "RESULT: True"}
	e := newTestEngine(b)

	got := e.Verify(context.Background(), types.VerificationInput{
		Text:     "claim text",
		Document: []byte("not a pdf"),
		URL:      "https://example.org/article",
	})
	if got.SourceInfo != "Direct text input" {
		t.Errorf("SourceInfo = %q, want text modality to win", got.SourceInfo)
	}
}

func TestVerifyLenientParsing(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantVerdict types.Verdict
		wantConf    int
	}{
		{
			name:        "non-numeric confidence defaults",
			reply:       "RESULT: True\nCONFIDENCE: high\nEXPLANATION: Looks right.",
			wantVerdict: types.VerdictTrue,
			wantConf:    50,
		},
		{
			name:        "no labels at all",
			reply:       "I am unable to evaluate this claim.",
			wantVerdict: types.VerdictUncertain,
			wantConf:    50,
		},
		{
			name:        "elaborated result line",
			reply:       "RESULT: False - contradicted by several sources\nCONFIDENCE: 90",
			wantVerdict: types.VerdictFalse,
			wantConf:    90,
		},
		{
			name:        "unrecognized verdict",
			reply:       "RESULT: Probably\nCONFIDENCE: 60",
			wantVerdict: types.VerdictUncertain,
			wantConf:    60,
		},
		{
			name:        "percent and clamp",
			reply:       "RESULT: True\nCONFIDENCE: 120%",
			wantVerdict: types.VerdictTrue,
			wantConf:    100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(&stubBackend{configured: true, reply: tt.reply})
			got := e.Verify(context.Background(), types.VerificationInput{Text: "claim"})
			if got.Verdict != tt.wantVerdict {
				t.Errorf("Verdict = %q, want %q", got.Verdict, tt.wantVerdict)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %d, want %d", got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestVerifyNoLabelsKeepsRawExplanation(t *testing.T) {
	raw := "I am unable to evaluate this claim."
	e := newTestEngine(&stubBackend{configured: true, reply: raw})
	got := e.Verify(context.Background(), types.VerificationInput{Text: "claim"})
	if got.Explanation != raw {
		t.Errorf("Explanation = %q, want raw reply", got.Explanation)
	}
}

func TestVerifyUnconfigured(t *testing.T) {
	e := newTestEngine(&stubBackend{configured: false})
	got := e.Verify(context.Background(), types.VerificationInput{Text: "claim"})
	if got.Verdict != types.VerdictError {
		t.Errorf("Verdict = %q, want Error", got.Verdict)
	}
	if !strings.Contains(got.Explanation, "AI service unavailable") {
		t.Errorf("Explanation = %q", got.Explanation)
	}
}

func TestVerifyRateLimited(t *testing.T) {
	b := &stubBackend{configured: true, reply: "RESULT: True"}
	e := newTestEngine(b)
	e.limiter = ratelimit.New(types.RateLimitConfig{MaxRequests: 1})
	e.limiter.Allow()

	got := e.Verify(context.Background(), types.VerificationInput{Text: "claim"})
	if got.Verdict != types.VerdictRateLimited {
		t.Errorf("Verdict = %q, want RateLimited", got.Verdict)
	}
	if !strings.Contains(got.Explanation, "try again in") {
		t.Errorf("Explanation = %q", got.Explanation)
	}
	if len(b.prompts) != 0 {
		t.Errorf("generate calls = %d, want 0", len(b.prompts))
	}
}

func TestVerifyInvalidURL(t *testing.T) {
	for _, raw := range []string{"notaurl", "ftp://example.org/doc", "http://", "example.org/path"} {
		t.Run(raw, func(t *testing.T) {
			b := &stubBackend{configured: true}
			e := newTestEngine(b)
			got := e.Verify(context.Background(), types.VerificationInput{URL: raw})
			if got.Verdict != types.VerdictInvalid {
				t.Errorf("Verdict = %q, want Invalid", got.Verdict)
			}
			if !strings.Contains(got.Explanation, "valid URL") {
				t.Errorf("Explanation = %q", got.Explanation)
			}
			if len(b.prompts) != 0 {
				t.Errorf("generate calls = %d, want 0", len(b.prompts))
			}
		})
	}
}

func TestVerifyURLModality(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "Mozilla/5.0") {
			t.Errorf("User-Agent = %q, want browser-like", r.Header.Get("User-Agent"))
		}
		fmt.Fprint(w, `<html><head><style>p{color:red}</style></head>
			<body><script>var hidden = "tracker";</script>
			<p>The committee approved the measure.</p></body></html>`)
	}))
	defer ts.Close()

	b := &stubBackend{configured: true, reply: "RESULT: True\nCONFIDENCE: 70"}
	e := newTestEngine(b)

	got := e.Verify(context.Background(), types.VerificationInput{URL: ts.URL})
	if got.Verdict != types.VerdictTrue {
		t.Fatalf("Verdict = %q, want True", got.Verdict)
	}
	if got.SourceInfo != "URL: "+ts.URL {
		t.Errorf("SourceInfo = %q", got.SourceInfo)
	}
	if len(b.prompts) != 1 {
		t.Fatal("expected one generate call")
	}
	if !strings.Contains(b.prompts[0], "The committee approved the measure.") {
		t.Errorf("prompt missing page text: %q", b.prompts[0])
	}
	if strings.Contains(b.prompts[0], "tracker") || strings.Contains(b.prompts[0], "color:red") {
		t.Errorf("prompt contains script/style content: %q", b.prompts[0])
	}
}

func TestVerifyURLFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	e := newTestEngine(&stubBackend{configured: true})
	got := e.Verify(context.Background(), types.VerificationInput{URL: ts.URL})
	if got.Verdict != types.VerdictError {
		t.Errorf("Verdict = %q, want Error", got.Verdict)
	}
	if !strings.Contains(got.Explanation, "Error fetching URL") {
		t.Errorf("Explanation = %q", got.Explanation)
	}
	if got.SourceInfo != "URL: "+ts.URL {
		t.Errorf("SourceInfo = %q", got.SourceInfo)
	}
}

func TestVerifyCorruptPDF(t *testing.T) {
	e := newTestEngine(&stubBackend{configured: true})
	got := e.Verify(context.Background(), types.VerificationInput{
		Document:     []byte("definitely not a pdf"),
		DocumentName: "claims.pdf",
	})
	if got.Verdict != types.VerdictError {
		t.Errorf("Verdict = %q, want Error", got.Verdict)
	}
	if !strings.Contains(got.Explanation, "Error processing PDF") {
		t.Errorf("Explanation = %q", got.Explanation)
	}
	if got.SourceInfo != "PDF file: claims.pdf" {
		t.Errorf("SourceInfo = %q", got.SourceInfo)
	}
}

func TestVerifyTruncatesToTextBudget(t *testing.T) {
	b := &stubBackend{configured: true, reply: "RESULT: True"}
	e := newTestEngine(b)
	e.cfg.TextBudget = 100

	long := strings.Repeat("a claim repeated many times over ", 50)
	e.Verify(context.Background(), types.VerificationInput{Text: long})
	if len(b.prompts) != 1 {
		t.Fatal("expected one generate call")
	}
	if len(b.prompts[0]) > len(verdictPrompt)+100 {
		t.Errorf("prompt length %d exceeds text budget", len(b.prompts[0]))
	}
}

func TestVerifyBackendError(t *testing.T) {
	e := newTestEngine(&stubBackend{configured: true, err: fmt.Errorf("upstream 500")})
	got := e.Verify(context.Background(), types.VerificationInput{Text: "claim"})
	if got.Verdict != types.VerdictError {
		t.Errorf("Verdict = %q, want Error", got.Verdict)
	}
	if !strings.Contains(got.Explanation, "Error analyzing content") {
		t.Errorf("Explanation = %q", got.Explanation)
	}
}

func TestNormalizeVerdict(t *testing.T) {
	tests := []struct {
		in   string
		want types.Verdict
	}{
		{"True", types.VerdictTrue},
		{"true.", types.VerdictTrue},
		{"FALSE", types.VerdictFalse},
		{"False - contradicted", types.VerdictFalse},
		{"Uncertain", types.VerdictUncertain},
		{"Probably", types.VerdictUncertain},
		{"", types.VerdictUncertain},
	}
	for _, tt := range tests {
		if got := normalizeVerdict(tt.in); got != tt.want {
			t.Errorf("normalizeVerdict(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
