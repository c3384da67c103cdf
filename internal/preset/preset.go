// Package preset defines correction modes: named bundles of guideline
// selection plus sparse rule-config overrides layered onto the standard
// baseline.
package preset

import (
	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/rules"
)

// Override is a sparse rule-config patch. Nil pointer fields leave the
// baseline value untouched; Options entries are merged key by key.
type Override struct {
	Enabled           *bool
	Severity          *lint.Severity
	Options           map[string]any
	SkipDialogue      *bool
	SkipLLMValidation *bool
}

// Mode is a named correction preset.
type Mode struct {
	ID   string
	Name string
	// Guidelines selects which published standards the mode enforces.
	Guidelines []string
	// Overrides patches the baseline per rule id. Only the specified
	// fields change; unspecified rules keep baseline values entirely.
	Overrides map[string]Override
	// PromptHint is a natural-language style description handed to the
	// LLM validator when building prompts.
	PromptHint string
}

func boolPtr(b bool) *bool                       { return &b }
func severityPtr(s lint.Severity) *lint.Severity { return &s }

// Baseline returns the standard configuration map: every built-in
// rule's default config keyed by rule id. A fresh map is built per call
// so callers can mutate freely.
func Baseline() map[string]lint.RuleConfig {
	out := make(map[string]lint.RuleConfig)
	for _, rule := range rules.All() {
		out[rule.ID()] = rule.DefaultConfig().Clone()
	}
	return out
}

// Resolve shallow-merges the mode's overrides onto the standard
// baseline. Deterministic and side-effect-free: same mode, same result.
func Resolve(mode Mode) map[string]lint.RuleConfig {
	cfgs := Baseline()
	for ruleID, ov := range mode.Overrides {
		// Overrides for unknown rules are kept so hosts can stage
		// configs for rules registered later.
		cfgs[ruleID] = patch(cfgs[ruleID], ov)
	}
	return cfgs
}

// patch applies one sparse override to a config.
func patch(cfg lint.RuleConfig, ov Override) lint.RuleConfig {
	if ov.Enabled != nil {
		cfg.Enabled = *ov.Enabled
	}
	if ov.Severity != nil {
		cfg.Severity = *ov.Severity
	}
	if ov.SkipDialogue != nil {
		cfg.SkipDialogue = *ov.SkipDialogue
	}
	if ov.SkipLLMValidation != nil {
		cfg.SkipLLMValidation = *ov.SkipLLMValidation
	}
	if len(ov.Options) > 0 {
		if cfg.Options == nil {
			cfg.Options = make(map[string]any, len(ov.Options))
		}
		for k, v := range ov.Options {
			cfg.Options[k] = v
		}
	}
	return cfg
}

// Apply resolves the mode and installs the resulting configs on the
// runner.
func Apply(runner *lint.Runner, mode Mode) {
	for ruleID, cfg := range Resolve(mode) {
		runner.SetConfig(ruleID, cfg)
	}
}

// ApplyOverrides patches the runner's installed configs with sparse
// overrides, layered on top of whatever mode Apply installed. Used for
// per-rule settings from the host config file.
func ApplyOverrides(runner *lint.Runner, overrides map[string]Override) {
	for ruleID, ov := range overrides {
		cfg, _ := runner.GetConfig(ruleID)
		runner.SetConfig(ruleID, patch(cfg, ov))
	}
}

// Modes returns the built-in correction modes.
func Modes() []Mode {
	vertical := map[string]any{"direction": rules.DirectionVertical}

	return []Mode{
		{
			ID:         "standard",
			Name:       "標準",
			Guidelines: []string{"jtf-style", "hyoki-rulebook"},
			Overrides:  map[string]Override{},
			PromptHint: "一般的な日本語の文章として自然かどうかで判断してください。",
		},
		{
			ID:         "novel",
			Name:       "小説（縦書き）",
			Guidelines: []string{"genko-sahou", "hyoki-rulebook"},
			Overrides: map[string]Override{
				"kanji-numeral":   {Options: vertical},
				"digit-grouping":  {Options: vertical},
				"fullwidth-alnum": {Options: vertical},
				"paragraph-indent": {Enabled: boolPtr(true),
					Severity: severityPtr(lint.SeverityWarning)},
				// Fiction bends stylistic rules inside dialogue.
				"ellipsis-style":       {SkipDialogue: boolPtr(true)},
				"double-punctuation":   {SkipDialogue: boolPtr(true)},
				"long-sentence":        {SkipDialogue: boolPtr(true)},
				"redundant-expression": {SkipLLMValidation: boolPtr(false)},
			},
			PromptHint: "縦書きの小説原稿です。会話文の口語表現や意図的な崩しは許容し、地の文の表記揺れのみ問題としてください。",
		},
		{
			ID:         "web",
			Name:       "Web記事（横書き）",
			Guidelines: []string{"jtf-style", "kisha-handbook"},
			Overrides: map[string]Override{
				"paragraph-indent":   {Enabled: boolPtr(false)},
				"indent-consistency": {Enabled: boolPtr(false)},
				"long-sentence": {Options: map[string]any{"maxRunes": 80},
					Severity: severityPtr(lint.SeverityWarning)},
			},
			PromptHint: "横書きのWeb記事です。読みやすさを優先し、算用数字と半角英数字を標準としてください。",
		},
		{
			ID:         "business",
			Name:       "ビジネス文書",
			Guidelines: []string{"koyobun", "jtf-style"},
			Overrides: map[string]Override{
				"ranuki":               {Severity: severityPtr(lint.SeverityError)},
				"redundant-expression": {Severity: severityPtr(lint.SeverityWarning)},
				"double-punctuation":   {Severity: severityPtr(lint.SeverityError)},
				"ellipsis-consistency": {Enabled: boolPtr(false)},
				"dash-consistency":     {Enabled: boolPtr(false)},
			},
			PromptHint: "ビジネス文書です。口語表現・重言・表記揺れは厳格に問題としてください。",
		},
		{
			ID:         "academic",
			Name:       "学術文書",
			Guidelines: []string{"koyobun"},
			Overrides: map[string]Override{
				// Academic prose uses ，／． punctuation, so the mix
				// rules invert their preference by staying silent.
				"comma-style":      {Enabled: boolPtr(false)},
				"period-style":     {Enabled: boolPtr(false)},
				"paragraph-indent": {Enabled: boolPtr(true)},
				"long-sentence":    {Options: map[string]any{"maxRunes": 150}},
			},
			PromptHint: "学術的な文書です。専門用語や引用表記は問題とせず、明確な誤記のみ問題としてください。",
		},
	}
}

// Lookup returns the built-in mode with the given id.
func Lookup(id string) (Mode, bool) {
	for _, m := range Modes() {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}
