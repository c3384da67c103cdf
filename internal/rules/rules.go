// Package rules contains the built-in correction rules for Japanese
// manuscript text. Every rule is a pure function of (text, config) and
// reports rune offsets into the exact input it was given.
package rules

import (
	"github.com/Iktahana/illusions-sub003/internal/guideline"
	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// guidelineFor resolves the guideline reference stamped onto issues.
// Empty for universal rules.
func guidelineFor(ruleID string) string {
	return guideline.ForRule(ruleID)
}

// baseRule carries the metadata shared by every concrete rule.
type baseRule struct {
	id    string
	name  string
	desc  string
	level lint.Level
	scope lint.Scope
	def   lint.RuleConfig
}

func (b *baseRule) ID() string                     { return b.id }
func (b *baseRule) Name() string                   { return b.name }
func (b *baseRule) Description() string            { return b.desc }
func (b *baseRule) Level() lint.Level              { return b.level }
func (b *baseRule) Scope() lint.Scope              { return b.scope }
func (b *baseRule) DefaultConfig() lint.RuleConfig { return b.def }

// All returns one instance of every built-in rule, in the order they
// should be registered. The order is stable so RunAll tie-breaking is
// deterministic across processes.
func All() []lint.Rule {
	return []lint.Rule{
		NewKanjiNumeralRule(),
		NewDigitGroupingRule(),
		NewEllipsisStyleRule(),
		NewDashStyleRule(),
		NewExclamationSpaceRule(),
		NewDoublePunctuationRule(),
		NewHalfwidthKatakanaRule(),
		NewFullwidthAlnumRule(),
		NewParagraphIndentRule(),
		NewTrailingWhitespaceRule(),
		NewClosingQuotePunctuationRule(),
		NewConsecutiveSpacesRule(),
		NewCommaStyleRule(),
		NewPeriodStyleRule(),
		NewUnmatchedBracketsRule(),
		NewLongSentenceRule(),
		NewRepeatedParticleRule(),
		NewRanukiRule(),
		NewRedundantExpressionRule(),
		NewASCIIPunctuationRule(),
		NewEllipsisConsistencyRule(),
		NewDashConsistencyRule(),
		NewNakaguroUsageRule(),
		NewIndentConsistencyRule(),
	}
}

// RegisterAll registers every built-in rule on the runner.
func RegisterAll(r *lint.Runner) {
	for _, rule := range All() {
		r.Register(rule)
	}
}
