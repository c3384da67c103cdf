package rules

import (
	"fmt"
	"strings"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// DigitGroupingRule flags long digit runs that lack thousands
// separators. Runs of exactly four digits are exempt because they are
// usually years.
type DigitGroupingRule struct {
	baseRule
}

// NewDigitGroupingRule returns the thousands-separator rule.
func NewDigitGroupingRule() *DigitGroupingRule {
	return &DigitGroupingRule{baseRule{
		id:    "digit-grouping",
		name:  "桁区切り",
		desc:  "5桁以上の数字に３桁区切りのカンマを入れることを提案します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityInfo,
			Options:  map[string]any{optDirection: DirectionHorizontal},
		},
	}}
}

// groupDigits inserts a comma every three digits from the right.
func groupDigits(digits string) string {
	var b strings.Builder
	n := len(digits)
	for i, r := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Lint flags maximal runs of 5+ ASCII digits. Vertical manuscripts use
// kanji numerals, so the rule is a no-op there.
func (r *DigitGroupingRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	if cfg.StringOption(optDirection, DirectionHorizontal) == DirectionVertical {
		return nil
	}
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i < len(scan); {
		if !isASCIIDigit(scan[i]) {
			i++
			continue
		}
		end := runEnd(scan, i, isASCIIDigit)
		if end-i >= 5 {
			grouped := groupDigits(string(scan[i:end]))
			issues = append(issues, lint.Issue{
				RuleID:     r.id,
				Severity:   cfg.Severity,
				Message:    fmt.Sprintf("桁区切りのカンマを入れてください: %s", grouped),
				MessageKey: "digit-grouping.missing-separator",
				From:       i,
				To:         end,
				Fix: &lint.Fix{
					Replacement: grouped,
					Label:       "カンマを挿入",
				},
				GuidelineID: guidelineFor(r.id),
			})
		}
		i = end
	}
	return issues
}
