package rules

import (
	"github.com/Iktahana/illusions-sub003/internal/lint"
)

func isExclamation(r rune) bool { return r == '！' || r == '？' }

func isClosingBracket(r rune) bool {
	switch r {
	case '」', '』', '）', '〉', '》', '】':
		return true
	}
	return false
}

// ExclamationSpaceRule requires a full-width space after ！ or ？ when
// the sentence continues. End of paragraph and closing brackets are
// exempt.
type ExclamationSpaceRule struct {
	baseRule
}

// NewExclamationSpaceRule returns the post-exclamation spacing rule.
func NewExclamationSpaceRule() *ExclamationSpaceRule {
	return &ExclamationSpaceRule{baseRule{
		id:    "exclamation-space",
		name:  "感嘆符・疑問符の後の空白",
		desc:  "文中の「！」「？」の後には全角空白を入れることを指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}
}

func (r *ExclamationSpaceRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i < len(scan); {
		if !isExclamation(scan[i]) {
			i++
			continue
		}
		end := runEnd(scan, i, isExclamation)
		if end == len(scan) || scan[end] == '　' || isClosingBracket(scan[end]) {
			i = end
			continue
		}
		issues = append(issues, lint.Issue{
			RuleID:     r.id,
			Severity:   cfg.Severity,
			Message:    "「！」「？」の後には全角空白を入れてください",
			MessageKey: "exclamation-space.missing",
			From:       i,
			To:         end,
			Fix: &lint.Fix{
				Replacement: string(scan[i:end]) + "　",
				Label:       "全角空白を挿入",
			},
			GuidelineID: guidelineFor(r.id),
		})
		i = end
	}
	return issues
}

// DoublePunctuationRule flags doubled sentence punctuation（。。、、）and
// exclamation clusters longer than two marks.
type DoublePunctuationRule struct {
	baseRule
}

// NewDoublePunctuationRule returns the doubled-punctuation rule.
func NewDoublePunctuationRule() *DoublePunctuationRule {
	return &DoublePunctuationRule{baseRule{
		id:    "double-punctuation",
		name:  "句読点の重複",
		desc:  "句読点の重複や感嘆符の使いすぎを指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityError,
		},
	}}
}

func (r *DoublePunctuationRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i < len(scan); {
		switch {
		case scan[i] == '。' || scan[i] == '、':
			mark := scan[i]
			end := runEnd(scan, i, func(r rune) bool { return r == mark })
			// Three or more 。 belong to the ellipsis rule.
			if end-i == 2 {
				issues = append(issues, lint.Issue{
					RuleID:      r.id,
					Severity:    cfg.Severity,
					Message:     "句読点が重複しています",
					MessageKey:  "double-punctuation.doubled",
					From:        i,
					To:          end,
					Fix:         &lint.Fix{Replacement: string(mark), Label: "重複を削除"},
					GuidelineID: guidelineFor(r.id),
				})
			}
			i = end
		case isExclamation(scan[i]):
			end := runEnd(scan, i, isExclamation)
			if end-i > 2 {
				issues = append(issues, lint.Issue{
					RuleID:     r.id,
					Severity:   cfg.Severity,
					Message:    "感嘆符・疑問符は2つまでにしてください",
					MessageKey: "double-punctuation.exclamation-run",
					From:       i,
					To:         end,
					Fix: &lint.Fix{
						Replacement: string(scan[i : i+2]),
						Label:       "2つに減らす",
					},
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

// ClosingQuotePunctuationRule flags a 。 immediately before a closing
// quote bracket; manuscript convention drops it（「そうだ」, not
// 「そうだ。」). Dialogue masking is off by default because the rule
// inspects quoted text by nature.
type ClosingQuotePunctuationRule struct {
	baseRule
}

// NewClosingQuotePunctuationRule returns the quote-final punctuation rule.
func NewClosingQuotePunctuationRule() *ClosingQuotePunctuationRule {
	return &ClosingQuotePunctuationRule{baseRule{
		id:    "closing-quote-punctuation",
		name:  "閉じ括弧前の句点",
		desc:  "閉じ括弧の直前の句点を指摘します（「そうだ。」→「そうだ」）",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityInfo,
		},
	}}
}

func (r *ClosingQuotePunctuationRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i+1 < len(scan); i++ {
		if scan[i] != '。' {
			continue
		}
		if scan[i+1] != '」' && scan[i+1] != '』' {
			continue
		}
		issues = append(issues, lint.Issue{
			RuleID:      r.id,
			Severity:    cfg.Severity,
			Message:     "閉じ括弧の直前の句点は不要です",
			MessageKey:  "closing-quote-punctuation.kuten",
			From:        i,
			To:          i + 1,
			Fix:         &lint.Fix{Replacement: "", Label: "句点を削除"},
			GuidelineID: guidelineFor(r.id),
		})
	}
	return issues
}

// ASCIIPunctuationRule flags ASCII ,.!? adjacent to Japanese text and
// suggests the full-width equivalents. Digit contexts (3.5, 1,000) are
// left alone.
type ASCIIPunctuationRule struct {
	baseRule
}

// NewASCIIPunctuationRule returns the ASCII punctuation rule.
func NewASCIIPunctuationRule() *ASCIIPunctuationRule {
	return &ASCIIPunctuationRule{baseRule{
		id:    "ascii-punctuation",
		name:  "半角約物",
		desc:  "和文に混ざった半角の句読点・感嘆符を指摘します",
		level: lint.L1,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}
}

var asciiPunctFixes = map[rune]struct {
	full string
	key  string
}{
	',': {"、", "comma"},
	'.': {"。", "period"},
	'!': {"！", "exclamation"},
	'?': {"？", "question"},
}

func (r *ASCIIPunctuationRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i, c := range scan {
		fix, ok := asciiPunctFixes[c]
		if !ok {
			continue
		}
		// Keep decimal points and grouped numbers intact.
		if (c == '.' || c == ',') &&
			i > 0 && isASCIIDigit(scan[i-1]) &&
			i+1 < len(scan) && isASCIIDigit(scan[i+1]) {
			continue
		}
		prevJa := i > 0 && isJapanese(scan[i-1])
		nextJa := i+1 < len(scan) && isJapanese(scan[i+1])
		if !prevJa && !nextJa {
			continue
		}
		issues = append(issues, lint.Issue{
			RuleID:      r.id,
			Severity:    cfg.Severity,
			Message:     "和文では全角の約物「" + fix.full + "」を使用してください",
			MessageKey:  "ascii-punctuation." + fix.key,
			From:        i,
			To:          i + 1,
			Fix:         &lint.Fix{Replacement: fix.full, Label: "全角に変換"},
			GuidelineID: guidelineFor(r.id),
		})
	}
	return issues
}
