// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/news-engine/internal/httputil"
)

// browserUserAgent is sent when fetching pages to verify. Many news sites
// reject obvious bot agents, so the fetch identifies as a desktop browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// extractCap bounds extracted text; anything beyond it cannot fit in a
// verdict prompt anyway.
const extractCap = 3000

// ExtractPDF pulls the plain text out of a PDF, page by page. Pages that
// yield no text are skipped; a document whose structure cannot be read at
// all returns an error. The parser panics on some malformed files, so the
// whole extraction runs under a recover.
func ExtractPDF(doc []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("reading PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not void the document.
			continue
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	return capText(collapseWhitespace(sb.String())), nil
}

// ValidateURL checks that raw is an absolute http(s) URL with a host.
// Validation happens before any network activity so a malformed URL never
// costs a request.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ExtractURL fetches the page and returns its visible text with script
// and style content removed and whitespace collapsed.
func ExtractURL(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	body, err := httputil.Get(ctx, client, pageURL, browserUserAgent, 0)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style").Remove()
	text := collapseWhitespace(doc.Text())
	if text == "" {
		return "", fmt.Errorf("page at %s has no extractable text", pageURL)
	}
	return capText(text), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capText(s string) string {
	if len(s) > extractCap {
		return s[:extractCap] + "..."
	}
	return s
}
