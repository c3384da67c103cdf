package rules

import (
	"golang.org/x/text/width"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

func isHalfwidthKatakana(r rune) bool {
	return r >= 'ｦ' && r <= 'ﾟ' // U+FF66..U+FF9F
}

// HalfwidthKatakanaRule flags half-width katakana runs and folds them
// to full-width.
type HalfwidthKatakanaRule struct {
	baseRule
}

// NewHalfwidthKatakanaRule returns the half-width katakana rule.
func NewHalfwidthKatakanaRule() *HalfwidthKatakanaRule {
	return &HalfwidthKatakanaRule{baseRule{
		id:    "halfwidth-katakana",
		name:  "半角カタカナ",
		desc:  "半角カタカナを全角に統一することを指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityError,
		},
	}}
}

func (r *HalfwidthKatakanaRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i < len(scan); {
		if !isHalfwidthKatakana(scan[i]) {
			i++
			continue
		}
		end := runEnd(scan, i, isHalfwidthKatakana)
		issues = append(issues, lint.Issue{
			RuleID:     r.id,
			Severity:   cfg.Severity,
			Message:    "半角カタカナは全角カタカナにしてください",
			MessageKey: "halfwidth-katakana.found",
			From:       i,
			To:         end,
			Fix: &lint.Fix{
				Replacement: width.Widen.String(string(scan[i:end])),
				Label:       "全角に変換",
			},
			GuidelineID: guidelineFor(r.id),
		})
		i = end
	}
	return issues
}

func isFullwidthAlnum(r rune) bool {
	return isFullwidthDigit(r) ||
		(r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ')
}

// FullwidthAlnumRule flags full-width ASCII letters and digits in
// horizontal manuscripts and narrows them. Vertical manuscripts keep
// full-width forms, so the rule checks the direction option.
type FullwidthAlnumRule struct {
	baseRule
}

// NewFullwidthAlnumRule returns the full-width alphanumeric rule.
func NewFullwidthAlnumRule() *FullwidthAlnumRule {
	return &FullwidthAlnumRule{baseRule{
		id:    "fullwidth-alnum",
		name:  "全角英数字",
		desc:  "横書きでの全角英数字を半角に統一することを指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
			Options:  map[string]any{optDirection: DirectionHorizontal},
		},
	}}
}

func (r *FullwidthAlnumRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	if cfg.StringOption(optDirection, DirectionHorizontal) == DirectionVertical {
		return nil
	}
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i < len(scan); {
		if !isFullwidthAlnum(scan[i]) {
			i++
			continue
		}
		end := runEnd(scan, i, isFullwidthAlnum)
		issues = append(issues, lint.Issue{
			RuleID:     r.id,
			Severity:   cfg.Severity,
			Message:    "横書きでは半角英数字を使用してください",
			MessageKey: "fullwidth-alnum.found",
			From:       i,
			To:         end,
			Fix: &lint.Fix{
				Replacement: width.Narrow.String(string(scan[i:end])),
				Label:       "半角に変換",
			},
			GuidelineID: guidelineFor(r.id),
		})
		i = end
	}
	return issues
}
