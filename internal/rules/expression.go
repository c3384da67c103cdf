package rules

import (
	"fmt"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// RanukiRule flags ら抜き verb forms from a fixed pattern table and
// suggests the standard potential form.
type RanukiRule struct {
	baseRule
}

// ranukiPatterns maps the colloquial form to the standard one. The
// table is deliberately conservative: only unambiguous ichidan verbs.
var ranukiPatterns = []struct {
	from, to string
}{
	{"見れる", "見られる"},
	{"見れない", "見られない"},
	{"食べれる", "食べられる"},
	{"食べれない", "食べられない"},
	{"来れる", "来られる"},
	{"来れない", "来られない"},
	{"出れる", "出られる"},
	{"出れない", "出られない"},
	{"着れる", "着られる"},
	{"寝れる", "寝られる"},
	{"起きれる", "起きられる"},
	{"信じれる", "信じられる"},
	{"覚えれる", "覚えられる"},
	{"決めれる", "決められる"},
}

// NewRanukiRule returns the ら抜き detection rule.
func NewRanukiRule() *RanukiRule {
	return &RanukiRule{baseRule{
		id:    "ranuki",
		name:  "ら抜き言葉",
		desc:  "ら抜き言葉を指摘します（見れる→見られる）",
		level: lint.L2,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
			// Dialogue may use colloquial speech deliberately.
			SkipDialogue: true,
		},
	}}
}

func (r *RanukiRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for _, p := range ranukiPatterns {
		needle := []rune(p.from)
		for _, i := range indexRunes(scan, needle) {
			issues = append(issues, lint.Issue{
				RuleID:      r.id,
				Severity:    cfg.Severity,
				Message:     fmt.Sprintf("ら抜き言葉です（%s→%s）", p.from, p.to),
				MessageKey:  "ranuki.found",
				From:        i,
				To:          i + len(needle),
				Fix:         &lint.Fix{Replacement: p.to, Label: "「ら」を補う"},
				GuidelineID: guidelineFor(r.id),
			})
		}
	}
	return issues
}

// RedundantExpressionRule flags set phrases that say the same thing
// twice and suggests the tightened form.
type RedundantExpressionRule struct {
	baseRule
}

var redundantExpressions = []struct {
	from, to string
}{
	{"まず最初に", "まず"},
	{"一番最初", "最初"},
	{"一番最後", "最後"},
	{"頭痛が痛い", "頭が痛い"},
	{"後で後悔", "後悔"},
	{"違和感を感じる", "違和感を覚える"},
	{"今現在", "現在"},
	{"過半数を超える", "過半数に達する"},
	{"必ず必要", "必要"},
	{"馬から落馬", "落馬"},
	{"炎天下の下", "炎天下"},
	{"返事を返す", "返事をする"},
}

// NewRedundantExpressionRule returns the redundant expression rule.
func NewRedundantExpressionRule() *RedundantExpressionRule {
	return &RedundantExpressionRule{baseRule{
		id:    "redundant-expression",
		name:  "重言",
		desc:  "意味の重複した言い回しを指摘します（頭痛が痛い など）",
		level: lint.L2,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:      true,
			Severity:     lint.SeverityInfo,
			SkipDialogue: true,
		},
	}}
}

func (r *RedundantExpressionRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for _, p := range redundantExpressions {
		needle := []rune(p.from)
		for _, i := range indexRunes(scan, needle) {
			issues = append(issues, lint.Issue{
				RuleID:      r.id,
				Severity:    cfg.Severity,
				Message:     fmt.Sprintf("重言です（%s→%s）", p.from, p.to),
				MessageKey:  "redundant-expression.found",
				From:        i,
				To:          i + len(needle),
				Fix:         &lint.Fix{Replacement: p.to, Label: "言い換える"},
				GuidelineID: guidelineFor(r.id),
			})
		}
	}
	return issues
}
