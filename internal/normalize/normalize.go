// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts heterogeneous provider records into canonical
// Articles. Downstream stages depend only on the Article type; every
// provider quirk is absorbed here.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Raw is a provider record before canonicalization. Backends fill whichever
// fields their provider exposes; all of them may be empty.
type Raw struct {
	Title       string
	Description string
	Content     string
	SourceName  string
	URL         string

	// PublishedAt is used when the provider already parsed the timestamp.
	PublishedAt time.Time

	// Published is the provider's raw timestamp string, parsed here when
	// PublishedAt is zero.
	Published string
}

// bracketed matches inline annotations like "[+1200 chars]" or "[photo]".
var bracketed = regexp.MustCompile(`\[[^\]]*\]`)

// paidPlaceholders are provider phrases substituted for article bodies on
// free plans. Matched case-insensitively and removed outright.
var paidPlaceholders = []string{
	"only available in paid plans",
	"content is only available to paid subscribers",
}

// Canonicalize converts a raw record into an Article. CanonicalText is
// derived with precedence content > description > title (first non-empty
// wins) and is always present: an entirely empty record yields the empty
// string, never an absent field.
func Canonicalize(raw Raw) types.Article {
	a := types.Article{
		Title:       clean(raw.Title),
		Description: clean(raw.Description),
		RawContent:  raw.Content,
		SourceName:  strings.TrimSpace(raw.SourceName),
		URL:         strings.TrimSpace(raw.URL),
		PublishedAt: raw.PublishedAt,
	}

	if a.PublishedAt.IsZero() && raw.Published != "" {
		a.PublishedAt = parsePublished(raw.Published)
	}

	body := firstNonEmpty(raw.Content, raw.Description, raw.Title)
	a.CanonicalText = clean(stripTitleEcho(body, raw.Title))
	if a.CanonicalText == "" {
		// The body was nothing but the echoed title (title-only records,
		// or content that repeats the headline verbatim). Keep the cleaned
		// body rather than degrading to the empty marker.
		a.CanonicalText = clean(body)
	}
	return a
}

// clean strips bracketed annotations and paid-plan placeholders, then
// collapses all internal whitespace to single spaces.
func clean(s string) string {
	if s == "" {
		return ""
	}
	s = bracketed.ReplaceAllString(s, "")
	for _, phrase := range paidPlaceholders {
		s = removeCaseInsensitive(s, phrase)
	}
	return strings.Join(strings.Fields(s), " ")
}

// stripTitleEcho removes a verbatim occurrence of the title from the body.
// Providers often prefix the body with the headline, which would otherwise
// duplicate the title in summaries.
func stripTitleEcho(body, title string) string {
	title = strings.TrimSpace(title)
	if title == "" || body == "" {
		return body
	}
	return strings.Replace(body, title, "", 1)
}

// removeCaseInsensitive deletes every occurrence of phrase from s,
// ignoring case.
func removeCaseInsensitive(s, phrase string) string {
	lower := strings.ToLower(s)
	phrase = strings.ToLower(phrase)
	for {
		i := strings.Index(lower, phrase)
		if i < 0 {
			return s
		}
		s = s[:i] + s[i+len(phrase):]
		lower = lower[:i] + lower[i+len(phrase):]
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// publishedLayouts covers the timestamp formats seen across providers:
// strict ISO-8601, RFC1123 feed dates, and date-only strings.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parsePublished tries each known layout and returns the zero time when
// none matches. Callers treat a zero time as "date unknown".
func parsePublished(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
