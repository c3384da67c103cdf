package rules

import (
	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// markMixIssues implements the shared minority-mark pattern for the
// comma and period style rules: count both marks in the paragraph and
// flag every occurrence of the rarer one. Equal counts flag the
// non-preferred mark.
func markMixIssues(scan []rune, preferred, alternate rune, cfg lint.RuleConfig, ruleID, key, message string) []lint.Issue {
	var nPref, nAlt int
	for _, c := range scan {
		switch c {
		case preferred:
			nPref++
		case alternate:
			nAlt++
		}
	}
	if nPref == 0 || nAlt == 0 {
		return nil
	}
	flag := alternate
	fix := preferred
	if nAlt > nPref {
		flag = preferred
		fix = alternate
	}
	var issues []lint.Issue
	for i, c := range scan {
		if c != flag {
			continue
		}
		issues = append(issues, lint.Issue{
			RuleID:      ruleID,
			Severity:    cfg.Severity,
			Message:     message,
			MessageKey:  key,
			From:        i,
			To:          i + 1,
			Fix:         &lint.Fix{Replacement: string(fix), Label: "表記を統一"},
			GuidelineID: guidelineFor(ruleID),
		})
	}
	return issues
}

// CommaStyleRule flags mixed comma styles（、 and ，）within one
// paragraph, keeping the majority mark.
type CommaStyleRule struct {
	baseRule
}

// NewCommaStyleRule returns the comma style rule.
func NewCommaStyleRule() *CommaStyleRule {
	return &CommaStyleRule{baseRule{
		id:    "comma-style",
		name:  "読点の混在",
		desc:  "読点「、」と全角カンマ「，」の混在を指摘します",
		level: lint.L2,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}
}

func (r *CommaStyleRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))
	return markMixIssues(scan, '、', '，', cfg, r.id,
		"comma-style.mixed", "読点の表記が混在しています")
}

// PeriodStyleRule flags mixed period styles（。 and ．）within one
// paragraph.
type PeriodStyleRule struct {
	baseRule
}

// NewPeriodStyleRule returns the period style rule.
func NewPeriodStyleRule() *PeriodStyleRule {
	return &PeriodStyleRule{baseRule{
		id:    "period-style",
		name:  "句点の混在",
		desc:  "句点「。」と全角ピリオド「．」の混在を指摘します",
		level: lint.L2,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}
}

func (r *PeriodStyleRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))
	return markMixIssues(scan, '。', '．', cfg, r.id,
		"period-style.mixed", "句点の表記が混在しています")
}
