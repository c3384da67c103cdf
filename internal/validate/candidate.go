// Package validate filters candidate issues through the language model
// to weed out false positives before they reach the writer.
package validate

import (
	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// Candidate is an issue awaiting model confirmation, together with the
// surrounding text needed to build a validation prompt.
type Candidate struct {
	Issue lint.Issue
	// Paragraph is the index of the paragraph the issue came from, so
	// document-wide batches can map survivors back. Callers set it.
	Paragraph int
	// SkipValidation passes the issue through without an inference
	// call. Set for rules whose config opts out of validation.
	SkipValidation bool
	// Context is the text surrounding the issue span.
	Context string
}

// DefaultContextWindow is how many runes of surrounding text a
// candidate carries on each side of its span.
const DefaultContextWindow = 30

// BuildCandidates pairs issues with their surrounding context from the
// original text. configs supplies each rule's SkipLLMValidation flag;
// issues from unknown rules are validated.
func BuildCandidates(issues []lint.Issue, text string, configs map[string]lint.RuleConfig) []Candidate {
	runes := []rune(text)
	out := make([]Candidate, 0, len(issues))
	for _, is := range issues {
		lo := is.From - DefaultContextWindow
		if lo < 0 {
			lo = 0
		}
		hi := is.To + DefaultContextWindow
		if hi > len(runes) {
			hi = len(runes)
		}
		ctxText := ""
		if lo < hi && lo >= 0 && hi <= len(runes) {
			ctxText = string(runes[lo:hi])
		}
		skip := false
		if cfg, ok := configs[is.RuleID]; ok {
			skip = cfg.SkipLLMValidation
		}
		out = append(out, Candidate{
			Issue:          is,
			SkipValidation: skip,
			Context:        ctxText,
		})
	}
	return out
}
