package rules

import (
	"github.com/Iktahana/illusions-sub003/internal/lint"
)

func isOpeningBracket(r rune) bool {
	switch r {
	case '「', '『', '（', '〈', '《', '【':
		return true
	}
	return false
}

func isAnySpace(r rune) bool { return r == ' ' || r == '　' || r == '\t' }

// ParagraphIndentRule requires the manuscript convention of opening a
// paragraph with a full-width space. Paragraphs opening with a bracket
// (dialogue, quotations) are exempt.
type ParagraphIndentRule struct {
	baseRule
}

// NewParagraphIndentRule returns the paragraph indent rule.
func NewParagraphIndentRule() *ParagraphIndentRule {
	return &ParagraphIndentRule{baseRule{
		id:    "paragraph-indent",
		name:  "段落冒頭の字下げ",
		desc:  "段落の冒頭に全角空白を入れる原稿作法を指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  false, // opt-in: web prose often skips indentation
			Severity: lint.SeverityInfo,
		},
	}}
}

func (r *ParagraphIndentRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	first := runes[0]
	if first == '　' || isOpeningBracket(first) {
		return nil
	}
	return []lint.Issue{{
		RuleID:     r.id,
		Severity:   cfg.Severity,
		Message:    "段落の冒頭には全角空白を入れてください",
		MessageKey: "paragraph-indent.missing",
		From:       0,
		To:         1,
		Fix: &lint.Fix{
			Replacement: "　" + string(first),
			Label:       "字下げを挿入",
		},
		GuidelineID: guidelineFor(r.id),
	}}
}

// TrailingWhitespaceRule flags whitespace at the end of a paragraph.
type TrailingWhitespaceRule struct {
	baseRule
}

// NewTrailingWhitespaceRule returns the trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{baseRule{
		id:    "trailing-whitespace",
		name:  "行末の空白",
		desc:  "段落末尾の不要な空白を指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityInfo,
		},
	}}
}

func (r *TrailingWhitespaceRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	runes := []rune(text)
	end := len(runes)
	start := end
	for start > 0 && isAnySpace(runes[start-1]) {
		start--
	}
	if start == end {
		return nil
	}
	return []lint.Issue{{
		RuleID:      r.id,
		Severity:    cfg.Severity,
		Message:     "段落末尾の空白を削除してください",
		MessageKey:  "trailing-whitespace.found",
		From:        start,
		To:          end,
		Fix:         &lint.Fix{Replacement: "", Label: "空白を削除"},
		GuidelineID: guidelineFor(r.id),
	}}
}

// ConsecutiveSpacesRule flags runs of two or more spaces inside a
// paragraph. The paragraph-opening indent is exempt.
type ConsecutiveSpacesRule struct {
	baseRule
}

// NewConsecutiveSpacesRule returns the consecutive spaces rule.
func NewConsecutiveSpacesRule() *ConsecutiveSpacesRule {
	return &ConsecutiveSpacesRule{baseRule{
		id:    "consecutive-spaces",
		name:  "連続する空白",
		desc:  "文中の連続した空白を指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}
}

func (r *ConsecutiveSpacesRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	i := 0
	// Skip the opening indent, whatever its width.
	i = runEnd(scan, i, isAnySpace)
	for i < len(scan) {
		if !isAnySpace(scan[i]) {
			i++
			continue
		}
		end := runEnd(scan, i, isAnySpace)
		if end-i >= 2 && end < len(scan) {
			issues = append(issues, lint.Issue{
				RuleID:      r.id,
				Severity:    cfg.Severity,
				Message:     "空白が連続しています",
				MessageKey:  "consecutive-spaces.found",
				From:        i,
				To:          end,
				Fix:         &lint.Fix{Replacement: string(scan[i]), Label: "1つに減らす"},
				GuidelineID: guidelineFor(r.id),
			})
		}
		i = end
	}
	return issues
}
