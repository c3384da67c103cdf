package rules

import (
	"github.com/Iktahana/illusions-sub003/internal/lint"
)

var bracketPairs = map[rune]rune{
	'「': '」',
	'『': '』',
	'（': '）',
	'〈': '〉',
	'《': '》',
	'【': '】',
}

var closingToOpening = func() map[rune]rune {
	m := make(map[rune]rune, len(bracketPairs))
	for o, c := range bracketPairs {
		m[c] = o
	}
	return m
}()

// UnmatchedBracketsRule flags brackets without a partner. Crossed
// nesting（「『」』）is locally ambiguous, so the crossed opening
// bracket is reported at info severity regardless of the configured
// one.
type UnmatchedBracketsRule struct {
	baseRule
}

// NewUnmatchedBracketsRule returns the bracket pairing rule.
func NewUnmatchedBracketsRule() *UnmatchedBracketsRule {
	return &UnmatchedBracketsRule{baseRule{
		id:    "unmatched-brackets",
		name:  "括弧の対応",
		desc:  "対応の取れていない括弧を指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityError,
		},
	}}
}

func (r *UnmatchedBracketsRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	// Masking would hide the very brackets under inspection, so the
	// rule always scans the original text.
	runes := []rune(text)

	type open struct {
		r     rune
		index int
	}
	var stack []open
	var issues []lint.Issue

	flag := func(i int, key, msg string) {
		issues = append(issues, lint.Issue{
			RuleID:      r.id,
			Severity:    cfg.Severity,
			Message:     msg,
			MessageKey:  key,
			From:        i,
			To:          i + 1,
			GuidelineID: guidelineFor(r.id),
		})
	}

	for i, c := range runes {
		if _, ok := bracketPairs[c]; ok {
			stack = append(stack, open{r: c, index: i})
			continue
		}
		opening, ok := closingToOpening[c]
		if !ok {
			continue
		}
		if len(stack) == 0 {
			flag(i, "unmatched-brackets.stray-close", "対応する開き括弧がありません")
			continue
		}
		top := stack[len(stack)-1]
		if top.r == opening {
			stack = stack[:len(stack)-1]
			continue
		}
		// Crossed nesting: report the mismatched opener and drop it so
		// later pairs can still match.
		issues = append(issues, lint.Issue{
			RuleID:      r.id,
			Severity:    lint.SeverityInfo,
			Message:     "括弧の入れ子が交差しています",
			MessageKey:  "unmatched-brackets.crossed",
			From:        top.index,
			To:          top.index + 1,
			GuidelineID: guidelineFor(r.id),
		})
		stack = stack[:len(stack)-1]
	}
	for _, o := range stack {
		flag(o.index, "unmatched-brackets.unclosed", "閉じ括弧がありません")
	}
	return issues
}
