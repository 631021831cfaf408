// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Verdict is the discrete outcome of the verification pipeline.
type Verdict string

const (
	VerdictTrue        Verdict = "True"
	VerdictFalse       Verdict = "False"
	VerdictUncertain   Verdict = "Uncertain"
	VerdictInvalid     Verdict = "Invalid"
	VerdictError       Verdict = "Error"
	VerdictRateLimited Verdict = "RateLimited"
)

// VerificationInput carries the material to verify. At most one modality is
// used per request; when several are supplied, precedence is
// Text > Document > URL.
type VerificationInput struct {
	// Text is raw text to verify, used as-is.
	Text string

	// Document is a page-structured binary (PDF) whose text is extracted
	// page by page.
	Document []byte

	// DocumentName is the display name of the uploaded document, used only
	// for the audit trail.
	DocumentName string

	// URL is a web page to fetch and verify.
	URL string
}

// IsEmpty reports whether no modality was supplied at all.
func (in VerificationInput) IsEmpty() bool {
	return in.Text == "" && len(in.Document) == 0 && in.URL == ""
}

// VerificationResult is the fully-populated outcome of a verify call.
// Failures are encoded in Verdict; no stage lets an error escape to the
// caller as a fault.
type VerificationResult struct {
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// Confidence is always an integer in [0,100]. Unparseable backend
	// confidence values default to 50.
	Confidence int `json:"confidence" yaml:"confidence"`

	Explanation string `json:"explanation" yaml:"explanation"`

	// SourceInfo records which modality (and which URL or file) produced
	// the analyzed text, for audit and display.
	SourceInfo string `json:"source_info" yaml:"source_info"`
}
