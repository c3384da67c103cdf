package rules

import (
	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// Document rules share one pattern: classify every paragraph into zero
// or more mutually exclusive convention buckets; if two or more buckets
// are non-empty, flag only the members of the minority bucket(s), each
// issue anchored at the triggering rune offset within its paragraph.

// bucketHit records where a paragraph matched a bucket.
type bucketHit struct {
	paraIndex int
	offset    int // rune offset of the triggering character
	length    int // rune length of the triggering span
}

// minorityHits returns the hits belonging to every bucket smaller than
// the largest one. Buckets tied with the largest are never flagged, so
// an even split flags nothing.
func minorityHits(buckets map[string][]bucketHit) []bucketHit {
	if len(buckets) < 2 {
		return nil
	}
	max := 0
	for _, hits := range buckets {
		if len(hits) > max {
			max = len(hits)
		}
	}
	var out []bucketHit
	for _, hits := range buckets {
		if len(hits) < max {
			out = append(out, hits...)
		}
	}
	return out
}

// docIssues converts minority hits into issues.
func docIssues(hits []bucketHit, ruleID, key, message string, cfg lint.RuleConfig) map[int][]lint.Issue {
	if len(hits) == 0 {
		return nil
	}
	out := make(map[int][]lint.Issue)
	for _, h := range hits {
		out[h.paraIndex] = append(out[h.paraIndex], lint.Issue{
			RuleID:      ruleID,
			Severity:    cfg.Severity,
			Message:     message,
			MessageKey:  key,
			From:        h.offset,
			To:          h.offset + h.length,
			GuidelineID: guidelineFor(ruleID),
		})
	}
	return out
}

// docBase gives the document rules a shared no-op paragraph path.
type docBase struct {
	baseRule
}

// Lint always returns nil for document-scoped rules so the paragraph
// call path never double-counts them.
func (docBase) Lint(string, lint.RuleConfig) []lint.Issue { return nil }

// firstRunOffset finds the first offset of a run of the given rune with
// at least minLen repetitions, or -1.
func firstRunOffset(runes []rune, target rune, minLen int) (int, int) {
	for i := 0; i < len(runes); {
		if runes[i] != target {
			i++
			continue
		}
		end := runEnd(runes, i, func(r rune) bool { return r == target })
		if end-i >= minLen {
			return i, end - i
		}
		i = end
	}
	return -1, 0
}

// EllipsisConsistencyRule buckets paragraphs by ellipsis spelling
// （…… vs ・・・）and flags the minority convention.
type EllipsisConsistencyRule struct {
	docBase
}

// NewEllipsisConsistencyRule returns the document-wide ellipsis
// consistency rule.
func NewEllipsisConsistencyRule() *EllipsisConsistencyRule {
	return &EllipsisConsistencyRule{docBase{baseRule{
		id:    "ellipsis-consistency",
		name:  "三点リーダーの統一",
		desc:  "文書全体で三点リーダーの表記を統一します",
		level: lint.L3,
		scope: lint.ScopeDocument,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}}
}

func (r *EllipsisConsistencyRule) LintDocument(paras []lint.Paragraph, cfg lint.RuleConfig) map[int][]lint.Issue {
	buckets := make(map[string][]bucketHit)
	for _, p := range paras {
		runes := []rune(lint.MaskedText(p.Text, cfg))
		if off, n := firstRunOffset(runes, '…', 1); off >= 0 {
			buckets["leader"] = append(buckets["leader"], bucketHit{p.Index, off, n})
		}
		if off, n := firstRunOffset(runes, '・', 3); off >= 0 {
			buckets["nakaguro"] = append(buckets["nakaguro"], bucketHit{p.Index, off, n})
		}
	}
	return docIssues(minorityHits(buckets), r.id,
		"ellipsis-consistency.minority",
		"三点リーダーの表記が文書内で統一されていません", cfg)
}

// DashConsistencyRule buckets paragraphs by dash spelling（――、——、--）
// and flags the minority.
type DashConsistencyRule struct {
	docBase
}

// NewDashConsistencyRule returns the document-wide dash consistency rule.
func NewDashConsistencyRule() *DashConsistencyRule {
	return &DashConsistencyRule{docBase{baseRule{
		id:    "dash-consistency",
		name:  "ダーシの統一",
		desc:  "文書全体でダーシの表記を統一します",
		level: lint.L3,
		scope: lint.ScopeDocument,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
		},
	}}}
}

func (r *DashConsistencyRule) LintDocument(paras []lint.Paragraph, cfg lint.RuleConfig) map[int][]lint.Issue {
	buckets := make(map[string][]bucketHit)
	for _, p := range paras {
		runes := []rune(lint.MaskedText(p.Text, cfg))
		if off, n := firstRunOffset(runes, '―', 1); off >= 0 {
			buckets["dash"] = append(buckets["dash"], bucketHit{p.Index, off, n})
		}
		if off, n := firstRunOffset(runes, '—', 1); off >= 0 {
			buckets["em-dash"] = append(buckets["em-dash"], bucketHit{p.Index, off, n})
		}
		if off, n := firstRunOffset(runes, '-', 2); off >= 0 {
			buckets["hyphen"] = append(buckets["hyphen"], bucketHit{p.Index, off, n})
		}
	}
	return docIssues(minorityHits(buckets), r.id,
		"dash-consistency.minority",
		"ダーシの表記が文書内で統一されていません", cfg)
}

// NakaguroUsageRule detects the middle dot being used both as a list
// bullet and as a word separator in one document; the minority usage is
// flagged because the two roles confuse readers.
type NakaguroUsageRule struct {
	docBase
}

// NewNakaguroUsageRule returns the middle-dot usage rule.
func NewNakaguroUsageRule() *NakaguroUsageRule {
	return &NakaguroUsageRule{docBase{baseRule{
		id:    "nakaguro-usage",
		name:  "中黒の用法",
		desc:  "中黒が箇条書きの行頭記号と語の区切りの両方に使われていないか確認します",
		level: lint.L3,
		scope: lint.ScopeDocument,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityInfo,
		},
	}}}
}

func (r *NakaguroUsageRule) LintDocument(paras []lint.Paragraph, cfg lint.RuleConfig) map[int][]lint.Issue {
	buckets := make(map[string][]bucketHit)
	for _, p := range paras {
		runes := []rune(lint.MaskedText(p.Text, cfg))
		for i, c := range runes {
			if c != '・' {
				continue
			}
			// A paragraph-leading dot (after optional indent) is a
			// list bullet; a dot between non-space runes separates
			// words. Ellipsis substitutes (3+ run) belong elsewhere.
			if end := runEnd(runes, i, func(r rune) bool { return r == '・' }); end-i >= 3 {
				break
			}
			lead := runEnd(runes, 0, isAnySpace)
			if i == lead {
				buckets["bullet"] = append(buckets["bullet"], bucketHit{p.Index, i, 1})
			} else if i > 0 && !isAnySpace(runes[i-1]) && i+1 < len(runes) && !isAnySpace(runes[i+1]) {
				buckets["separator"] = append(buckets["separator"], bucketHit{p.Index, i, 1})
			}
			break // one hit per paragraph keeps bucket sizes comparable
		}
	}
	return docIssues(minorityHits(buckets), r.id,
		"nakaguro-usage.minority",
		"中黒の用法が文書内で統一されていません", cfg)
}

// IndentConsistencyRule buckets paragraphs by whether they open with
// the full-width-space indent and flags the minority convention.
// Dialogue paragraphs (opening with a bracket) are neutral.
type IndentConsistencyRule struct {
	docBase
}

// NewIndentConsistencyRule returns the indent consistency rule.
func NewIndentConsistencyRule() *IndentConsistencyRule {
	return &IndentConsistencyRule{docBase{baseRule{
		id:    "indent-consistency",
		name:  "字下げの統一",
		desc:  "段落冒頭の字下げの有無を文書全体で統一します",
		level: lint.L3,
		scope: lint.ScopeDocument,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityInfo,
		},
	}}}
}

func (r *IndentConsistencyRule) LintDocument(paras []lint.Paragraph, cfg lint.RuleConfig) map[int][]lint.Issue {
	buckets := make(map[string][]bucketHit)
	for _, p := range paras {
		runes := []rune(p.Text)
		if len(runes) == 0 || isOpeningBracket(runes[0]) {
			continue
		}
		if runes[0] == '　' {
			buckets["indented"] = append(buckets["indented"], bucketHit{p.Index, 0, 1})
		} else {
			buckets["flush"] = append(buckets["flush"], bucketHit{p.Index, 0, 1})
		}
	}
	return docIssues(minorityHits(buckets), r.id,
		"indent-consistency.minority",
		"段落冒頭の字下げが文書内で統一されていません", cfg)
}
