// Package lint defines the core correction-rule contract and the runner
// that executes registered rules over manuscript text.
package lint

import "fmt"

// Severity classifies how strongly an issue should be surfaced to the writer.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity converts a string into a Severity.
// Returns an error for anything other than the three known levels.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("unknown severity: %q", s)
	}
}

// Level is a rough cost/confidence tier for a rule.
// L1 rules are cheap character scans, L2 rules need paragraph context,
// L3 rules reason over the whole document.
type Level int

const (
	L1 Level = 1
	L2 Level = 2
	L3 Level = 3
)

// Scope tells the runner which call path a rule participates in.
type Scope int

const (
	// ScopeParagraph rules run per paragraph via Lint.
	ScopeParagraph Scope = iota
	// ScopeDocument rules run once over the ordered paragraph list via
	// LintDocument; their Lint always returns nil so paragraph runs
	// never double-count them.
	ScopeDocument
)

// Fix is an optional replacement suggestion attached to an issue.
type Fix struct {
	// Replacement is the text that should replace the [From, To) span.
	Replacement string
	// Label is a short human-readable description of the fix.
	Label string
}

// Issue is a single finding produced by a rule. Issues are ephemeral:
// they are recomputed on every run and never persisted.
//
// From and To are rune offsets into the exact input string the host
// supplied (half-open interval). Rules that scan a dialogue-masked copy
// still report offsets valid against the original, because masking is
// 1-for-1 per rune.
type Issue struct {
	RuleID      string
	Severity    Severity
	Message     string // display message (Japanese)
	MessageKey  string // stable machine key, e.g. "kanji-numeral.use-arabic"
	From        int    // inclusive rune offset
	To          int    // exclusive rune offset
	Fix         *Fix   // nil when no automatic fix exists
	GuidelineID string // empty when the rule is universal
}

// RuleConfig is the per-rule configuration owned by the runner.
// One instance exists per registered rule id, seeded from the rule's
// default config at registration time.
type RuleConfig struct {
	Enabled  bool
	Severity Severity
	// Options carries rule-specific settings (thresholds, direction, ...).
	Options map[string]any
	// SkipDialogue masks quoted dialogue before scanning.
	SkipDialogue bool
	// SkipLLMValidation marks issues from this rule as pass-through for
	// the validator.
	SkipLLMValidation bool
}

// Clone returns a deep copy so callers can mutate options without
// aliasing the runner's stored config.
func (c RuleConfig) Clone() RuleConfig {
	out := c
	if c.Options != nil {
		out.Options = make(map[string]any, len(c.Options))
		for k, v := range c.Options {
			out.Options[k] = v
		}
	}
	return out
}

// IntOption reads an integer option, tolerating the int/float64 ambiguity
// that YAML and JSON decoding introduce. Returns def when absent or
// non-numeric.
func (c RuleConfig) IntOption(key string, def int) int {
	v, ok := c.Options[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// StringOption reads a string option, returning def when absent.
func (c RuleConfig) StringOption(key, def string) string {
	if v, ok := c.Options[key].(string); ok {
		return v
	}
	return def
}

// BoolOption reads a boolean option, returning def when absent.
func (c RuleConfig) BoolOption(key string, def bool) bool {
	if v, ok := c.Options[key].(bool); ok {
		return v
	}
	return def
}

// Paragraph is one element of the ordered paragraph list a document rule
// receives. Index is the paragraph's position in the document.
type Paragraph struct {
	Text  string
	Index int
}
