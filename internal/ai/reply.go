// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"strconv"
	"strings"
)

// defaultConfidence stands in when the model's confidence is absent or not
// a number.
const defaultConfidence = 50

// LabeledReply is the result of leniently parsing a labeled-line reply
// (e.g. "RESULT: ...", "CONFIDENCE: 80%", "EXPLANATION: ...").
type LabeledReply struct {
	// Result is the remainder of the result-label line, trimmed. Empty
	// when the line is absent; check ResultFound to distinguish an absent
	// line from an empty value.
	Result      string
	ResultFound bool

	// Confidence is always in [0,100]. A missing or unparseable value
	// becomes 50.
	Confidence int

	// Explanation is the remainder of the EXPLANATION line, or the whole
	// raw reply when no labeled explanation was found.
	Explanation string
}

// ParseLabeledReply scans reply lines for resultLabel, "CONFIDENCE", and
// "EXPLANATION". Models do not reliably follow the requested format, so
// parsing is best-effort: labels may appear anywhere in a line, a trailing
// "%" on the confidence is ignored, and anything unrecognized falls back
// to defaults rather than failing.
func ParseLabeledReply(reply, resultLabel string) LabeledReply {
	parsed := LabeledReply{
		Confidence:  defaultConfidence,
		Explanation: strings.TrimSpace(reply),
	}

	resultLabel = strings.ToUpper(resultLabel) + ":"
	for _, line := range strings.Split(reply, "\n") {
		upper := strings.ToUpper(line)
		switch {
		case !parsed.ResultFound && strings.Contains(upper, resultLabel):
			parsed.Result = remainderAfter(line, upper, resultLabel)
			parsed.ResultFound = true
		case strings.Contains(upper, "CONFIDENCE:"):
			parsed.Confidence = parseConfidence(remainderAfter(line, upper, "CONFIDENCE:"))
		case strings.Contains(upper, "EXPLANATION:"):
			if text := remainderAfter(line, upper, "EXPLANATION:"); text != "" {
				parsed.Explanation = text
			}
		}
	}
	return parsed
}

// remainderAfter returns the trimmed text following the label. The upper
// copy locates the label case-insensitively while the original casing is
// preserved in the returned text.
func remainderAfter(line, upper, label string) string {
	i := strings.Index(upper, label)
	return strings.TrimSpace(line[i+len(label):])
}

// parseConfidence coerces a confidence string into [0,100]. A trailing
// "%" is stripped; non-numeric values (e.g. "high") become 50.
func parseConfidence(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	n, err := strconv.Atoi(s)
	if err != nil {
		// Accept "87.5"-style values by truncating.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return defaultConfidence
		}
		n = int(f)
	}
	return ClampConfidence(n)
}

// ClampConfidence bounds n to [0,100].
func ClampConfidence(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
