package lint

// Rule is a stateless detection algorithm over a single paragraph.
// Implementations must be pure functions of (text, config): same input,
// same issues, no retained state between calls.
type Rule interface {
	// ID is the stable identifier, unique within a runner.
	ID() string
	// Name is the display name (Japanese).
	Name() string
	// Description explains what the rule flags.
	Description() string
	// Level reports the rule's cost/confidence tier.
	Level() Level
	// Scope tells the runner which call path the rule participates in.
	Scope() Scope
	// DefaultConfig seeds the runner's config map at registration.
	DefaultConfig() RuleConfig
	// Lint scans one paragraph and returns findings with rune offsets
	// into text. Document-scoped rules return nil here.
	Lint(text string, cfg RuleConfig) []Issue
}

// DocumentRule extends Rule with a whole-document pass. The runner calls
// LintDocument exactly once per run with the full ordered paragraph
// list; issue offsets are rune offsets within the owning paragraph.
//
// Document rules exist for majority-convention checks: classify every
// paragraph into pattern buckets and flag only the paragraphs that
// deviate from the dominant convention.
type DocumentRule interface {
	Rule
	// LintDocument returns issues keyed by paragraph index. Paragraphs
	// with no findings are simply absent from the map.
	LintDocument(paras []Paragraph, cfg RuleConfig) map[int][]Issue
}
