package lint

import (
	"log/slog"
	"sort"
)

// Runner holds the registered rule set and per-rule configuration and
// executes enabled rules over host-supplied text.
//
// Rule execution is synchronous and CPU-bound with no shared mutable
// state beyond the config map, so a Runner is safe to call from any
// goroutine as long as SetConfig is not raced against a run. Hosts that
// reconfigure concurrently must provide their own exclusion.
type Runner struct {
	rules   map[string]Rule
	order   []string // registration order, kept for deterministic runs
	configs map[string]RuleConfig
	logger  *slog.Logger
}

// NewRunner creates an empty runner. The logger may be nil.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		rules:   make(map[string]Rule),
		configs: make(map[string]RuleConfig),
		logger:  logger,
	}
}

// Register stores a rule. Re-registering an id replaces the rule but
// keeps any existing config; otherwise the config is seeded from the
// rule's default.
func (r *Runner) Register(rule Rule) {
	id := rule.ID()
	if _, exists := r.rules[id]; !exists {
		r.order = append(r.order, id)
	}
	r.rules[id] = rule
	if _, ok := r.configs[id]; !ok {
		r.configs[id] = rule.DefaultConfig().Clone()
	}
}

// SetConfig overwrites the config for a rule id. Unknown ids are stored
// anyway so a config can be staged before its rule registers; Register
// will not clobber it.
func (r *Runner) SetConfig(id string, cfg RuleConfig) {
	r.configs[id] = cfg.Clone()
}

// GetConfig returns the stored config for id. ok is false for ids that
// were never registered or configured.
func (r *Runner) GetConfig(id string) (RuleConfig, bool) {
	cfg, ok := r.configs[id]
	if !ok {
		return RuleConfig{}, false
	}
	return cfg.Clone(), true
}

// Rules returns all registered rules in registration order.
func (r *Runner) Rules() []Rule {
	out := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}
	return out
}

// EnabledRules returns registered rules whose config is enabled, in
// registration order.
func (r *Runner) EnabledRules() []Rule {
	var out []Rule
	for _, id := range r.order {
		if r.configs[id].Enabled {
			out = append(out, r.rules[id])
		}
	}
	return out
}

// Run executes a single rule against text. Unknown or disabled ids
// yield nil, never an error.
func (r *Runner) Run(id, text string) []Issue {
	rule, ok := r.rules[id]
	if !ok {
		return nil
	}
	cfg := r.configs[id]
	if !cfg.Enabled {
		return nil
	}
	return rule.Lint(text, cfg)
}

// RunAll executes every enabled paragraph-capable rule against text and
// returns the concatenated findings, stable-sorted ascending by From.
// Ties keep the emission order, which follows registration order.
func (r *Runner) RunAll(text string) []Issue {
	var issues []Issue
	for _, id := range r.order {
		cfg := r.configs[id]
		if !cfg.Enabled {
			continue
		}
		found := r.rules[id].Lint(text, cfg)
		if len(found) > 0 {
			issues = append(issues, found...)
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].From < issues[j].From
	})
	return issues
}

// RunDocument executes every enabled document-scoped rule over the
// ordered paragraph list and merges the per-paragraph issue maps. Each
// paragraph's slice is stable-sorted ascending by From.
func (r *Runner) RunDocument(paras []Paragraph) map[int][]Issue {
	merged := make(map[int][]Issue)
	for _, id := range r.order {
		cfg := r.configs[id]
		if !cfg.Enabled {
			continue
		}
		rule := r.rules[id]
		if rule.Scope() != ScopeDocument {
			continue
		}
		doc, ok := rule.(DocumentRule)
		if !ok {
			// Scope claims document but the interface is missing;
			// treat as misregistered and skip.
			r.logger.Warn("document-scoped rule lacks LintDocument", "rule", id)
			continue
		}
		for idx, found := range doc.LintDocument(paras, cfg) {
			merged[idx] = append(merged[idx], found...)
		}
	}
	for idx := range merged {
		issues := merged[idx]
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].From < issues[j].From
		})
		merged[idx] = issues
	}
	return merged
}
