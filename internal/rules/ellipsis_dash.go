package rules

import (
	"strings"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// EllipsisStyleRule enforces the publishing convention that the
// three-dot leader … appears in pairs (……) and that ad-hoc spellings
// like ・・・ or 。。。 are not used as ellipses.
type EllipsisStyleRule struct {
	baseRule
}

// NewEllipsisStyleRule returns the ellipsis notation rule.
func NewEllipsisStyleRule() *EllipsisStyleRule {
	return &EllipsisStyleRule{baseRule{
		id:    "ellipsis-style",
		name:  "三点リーダー",
		desc:  "三点リーダーは偶数個（……）で使用し、中黒や句点の代用を指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}
}

func (r *EllipsisStyleRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i < len(scan); {
		switch scan[i] {
		case '…':
			end := runEnd(scan, i, func(r rune) bool { return r == '…' })
			if (end-i)%2 == 1 {
				issues = append(issues, lint.Issue{
					RuleID:     r.id,
					Severity:   cfg.Severity,
					Message:    "三点リーダーは偶数個で使用してください（……）",
					MessageKey: "ellipsis-style.odd-count",
					From:       i,
					To:         end,
					Fix: &lint.Fix{
						Replacement: strings.Repeat("…", end-i+1),
						Label:       "偶数個に揃える",
					},
					GuidelineID: guidelineFor(r.id),
				})
			}
			i = end
		case '・':
			end := runEnd(scan, i, func(r rune) bool { return r == '・' })
			if end-i >= 3 {
				issues = append(issues, lint.Issue{
					RuleID:      r.id,
					Severity:    cfg.Severity,
					Message:     "中黒の連続ではなく三点リーダー（……）を使用してください",
					MessageKey:  "ellipsis-style.nakaguro",
					From:        i,
					To:          end,
					Fix:         &lint.Fix{Replacement: "……", Label: "三点リーダーに置換"},
					GuidelineID: guidelineFor(r.id),
				})
			}
			i = end
		case '。':
			end := runEnd(scan, i, func(r rune) bool { return r == '。' })
			if end-i >= 3 {
				issues = append(issues, lint.Issue{
					RuleID:      r.id,
					Severity:    cfg.Severity,
					Message:     "句点の連続ではなく三点リーダー（……）を使用してください",
					MessageKey:  "ellipsis-style.kuten",
					From:        i,
					To:          end,
					Fix:         &lint.Fix{Replacement: "……", Label: "三点リーダーに置換"},
					GuidelineID: guidelineFor(r.id),
				})
			}
			i = end
		default:
			i++
		}
	}
	return issues
}

// DashStyleRule enforces paired dashes (――) and flags substitutes:
// the em dash and ASCII hyphen runs used as dashes.
type DashStyleRule struct {
	baseRule
}

// NewDashStyleRule returns the dash notation rule.
func NewDashStyleRule() *DashStyleRule {
	return &DashStyleRule{baseRule{
		id:    "dash-style",
		name:  "ダーシ",
		desc:  "ダーシは偶数個（――）で使用し、全角ダッシュやハイフンの代用を指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}
}

func (r *DashStyleRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i < len(scan); {
		switch scan[i] {
		case '―': // U+2015 horizontal bar, the publishing dash
			end := runEnd(scan, i, func(r rune) bool { return r == '―' })
			if (end-i)%2 == 1 {
				issues = append(issues, lint.Issue{
					RuleID:     r.id,
					Severity:   cfg.Severity,
					Message:    "ダーシは偶数個で使用してください（――）",
					MessageKey: "dash-style.odd-count",
					From:       i,
					To:         end,
					Fix: &lint.Fix{
						Replacement: strings.Repeat("―", end-i+1),
						Label:       "偶数個に揃える",
					},
					GuidelineID: guidelineFor(r.id),
				})
			}
			i = end
		case '—': // U+2014 em dash
			end := runEnd(scan, i, func(r rune) bool { return r == '—' })
			issues = append(issues, lint.Issue{
				RuleID:      r.id,
				Severity:    cfg.Severity,
				Message:     "全角ダッシュではなくダーシ（――）を使用してください",
				MessageKey:  "dash-style.em-dash",
				From:        i,
				To:          end,
				Fix:         &lint.Fix{Replacement: "――", Label: "ダーシに置換"},
				GuidelineID: guidelineFor(r.id),
			})
			i = end
		case '-':
			end := runEnd(scan, i, func(r rune) bool { return r == '-' })
			// A lone hyphen between ASCII is ordinary text; two or more
			// between Japanese text is a dash substitute.
			if end-i >= 2 && (i > 0 && isJapanese(scan[i-1]) || end < len(scan) && isJapanese(scan[end])) {
				issues = append(issues, lint.Issue{
					RuleID:      r.id,
					Severity:    cfg.Severity,
					Message:     "ハイフンではなくダーシ（――）を使用してください",
					MessageKey:  "dash-style.hyphen",
					From:        i,
					To:          end,
					Fix:         &lint.Fix{Replacement: "――", Label: "ダーシに置換"},
					GuidelineID: guidelineFor(r.id),
				})
			}
			i = end
		default:
			i++
		}
	}
	return issues
}
