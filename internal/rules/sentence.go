package rules

import (
	"fmt"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// LongSentenceRule flags sentences whose rune count exceeds the
// maxRunes option. Anchored at the sentence start.
type LongSentenceRule struct {
	baseRule
}

const optMaxRunes = "maxRunes"

// NewLongSentenceRule returns the sentence length rule.
func NewLongSentenceRule() *LongSentenceRule {
	return &LongSentenceRule{baseRule{
		id:    "long-sentence",
		name:  "長文",
		desc:  "一文が長すぎる箇所を指摘します",
		level: lint.L2,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityInfo,
			Options:  map[string]any{optMaxRunes: 100},
		},
	}}
}

func (r *LongSentenceRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	maxRunes := cfg.IntOption(optMaxRunes, 100)
	if maxRunes <= 0 {
		return nil
	}
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	start := 0
	flush := func(end int) {
		length := end - start
		if length > maxRunes {
			issues = append(issues, lint.Issue{
				RuleID:      r.id,
				Severity:    cfg.Severity,
				Message:     fmt.Sprintf("一文が%d文字あります（目安: %d文字以内）", length, maxRunes),
				MessageKey:  "long-sentence.too-long",
				From:        start,
				To:          start + 1,
				GuidelineID: guidelineFor(r.id),
			})
		}
		start = end
	}
	for i, c := range scan {
		if c == '。' || c == '！' || c == '？' {
			flush(i + 1)
		}
	}
	flush(len(scan))
	return issues
}

// RepeatedParticleRule flags an immediately doubled particle（のの、
// にに、...）, which is almost always a typo.
type RepeatedParticleRule struct {
	baseRule
}

var doubledParticles = map[rune]bool{
	'の': true, 'に': true, 'を': true, 'は': true,
	'が': true, 'で': true, 'と': true, 'も': true,
}

// NewRepeatedParticleRule returns the doubled particle rule.
func NewRepeatedParticleRule() *RepeatedParticleRule {
	return &RepeatedParticleRule{baseRule{
		id:    "repeated-particle",
		name:  "助詞の重複",
		desc:  "同じ助詞が連続する打ち間違いを指摘します",
		level: lint.L2,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
			// Doubled particles inside dialogue are often intentional
			// stammering, so dialogue is skipped by default.
			SkipDialogue: true,
		},
	}}
}

func (r *RepeatedParticleRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	scan := []rune(lint.MaskedText(text, cfg))

	var issues []lint.Issue
	for i := 0; i+1 < len(scan); i++ {
		c := scan[i]
		if !doubledParticles[c] || scan[i+1] != c {
			continue
		}
		// Three or more repeats are probably deliberate emphasis.
		if i+2 < len(scan) && scan[i+2] == c {
			i = runEnd(scan, i, func(r rune) bool { return r == c }) - 1
			continue
		}
		issues = append(issues, lint.Issue{
			RuleID:      r.id,
			Severity:    cfg.Severity,
			Message:     fmt.Sprintf("助詞「%c」が重複しています", c),
			MessageKey:  "repeated-particle.doubled",
			From:        i,
			To:          i + 2,
			Fix:         &lint.Fix{Replacement: string(c), Label: "重複を削除"},
			GuidelineID: guidelineFor(r.id),
		})
		i++
	}
	return issues
}
