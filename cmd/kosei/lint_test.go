package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/preset"
	"github.com/Iktahana/illusions-sub003/internal/rules"
)

func standardRunner(t *testing.T) *lint.Runner {
	t.Helper()
	runner := lint.NewRunner(nil)
	rules.RegisterAll(runner)
	mode, ok := preset.Lookup("standard")
	require.True(t, ok)
	preset.Apply(runner, mode)
	return runner
}

func ruleIDs(issues []lint.Issue) []string {
	ids := make([]string, len(issues))
	for i, is := range issues {
		ids[i] = is.RuleID
	}
	return ids
}

func TestRunManuscriptIncludesParagraphRules(t *testing.T) {
	runner := standardRunner(t)
	paras := splitParagraphs("在庫は三百五十個でｶﾀｶﾅと123456だ。\n")

	byPara := runManuscript(runner, paras)
	require.Contains(t, byPara, 0)

	ids := ruleIDs(byPara[0])
	assert.Contains(t, ids, "kanji-numeral")
	assert.Contains(t, ids, "halfwidth-katakana")
	assert.Contains(t, ids, "digit-grouping")
}

func TestRunManuscriptMergesDocumentRules(t *testing.T) {
	runner := standardRunner(t)
	paras := splitParagraphs("今日も……待つ。\n昨日も・・・待った。\nまた・・・明日も。\n")

	byPara := runManuscript(runner, paras)

	// The minority ellipsis convention comes from the document rule;
	// the paragraph rules still report on the same paragraph.
	require.Contains(t, byPara, 0)
	assert.Contains(t, ruleIDs(byPara[0]), "ellipsis-consistency")

	for _, issues := range byPara {
		for i := 1; i < len(issues); i++ {
			assert.LessOrEqual(t, issues[i-1].From, issues[i].From,
				"issues must be ordered by offset")
		}
	}
}

func TestSplitParagraphsKeepsLineNumbers(t *testing.T) {
	paras := splitParagraphs("一行目。\n\n三行目。\n")
	require.Len(t, paras, 3)
	assert.Equal(t, "一行目。", paras[0].Text)
	assert.Equal(t, "", paras[1].Text)
	assert.Equal(t, "三行目。", paras[2].Text)
	assert.Equal(t, 2, paras[2].Index)
}

func TestSplitParagraphsHandlesCRLF(t *testing.T) {
	paras := splitParagraphs("一行目。\r\n二行目。\r\n")
	require.Len(t, paras, 2)
	assert.Equal(t, "一行目。", paras[0].Text)
	assert.Equal(t, "二行目。", paras[1].Text)
}

func TestFlattenOrdersByParagraph(t *testing.T) {
	byPara := map[int][]lint.Issue{
		2: {{RuleID: "b", From: 0, To: 1, Severity: lint.SeverityWarning}},
		0: {{RuleID: "a", From: 3, To: 5, Severity: lint.SeverityError,
			Fix: &lint.Fix{Replacement: "直し"}}},
	}
	flat := flatten(byPara)
	require.Len(t, flat, 2)
	assert.Equal(t, 0, flat[0].Paragraph)
	assert.Equal(t, "a", flat[0].RuleID)
	assert.Equal(t, "直し", flat[0].Fix)
	assert.Equal(t, 2, flat[1].Paragraph)
}

func TestCountSeverity(t *testing.T) {
	issues := []flatIssue{
		{Severity: "error"},
		{Severity: "error"},
		{Severity: "warning"},
		{Severity: "info"},
	}
	assert.Equal(t, 2, countSeverity(issues, lint.SeverityError))
	assert.Equal(t, 1, countSeverity(issues, lint.SeverityWarning))
	assert.Equal(t, 1, countSeverity(issues, lint.SeverityInfo))
}

func TestRenderIssuesJSON(t *testing.T) {
	flagFormat = "json"
	defer func() { flagFormat = "text" }()

	var buf bytes.Buffer
	issues := []flatIssue{
		{Paragraph: 0, RuleID: "kanji-numeral", Severity: "info",
			Message: "msg", From: 3, To: 7, Fix: "350"},
	}
	require.NoError(t, renderIssues(&buf, "test.txt", nil, issues))

	var decoded []flatIssue
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "kanji-numeral", decoded[0].RuleID)
	assert.Equal(t, "350", decoded[0].Fix)
}

func TestRenderIssuesTextIncludesFix(t *testing.T) {
	flagFormat = "text"
	var buf bytes.Buffer
	paras := []lint.Paragraph{{Text: "価格は三百五十円だ。", Index: 0}}
	issues := []flatIssue{
		{Paragraph: 0, RuleID: "kanji-numeral", Severity: "info",
			Message: "算用数字を使用してください", From: 3, To: 7, Fix: "350"},
	}
	require.NoError(t, renderIssues(&buf, "test.txt", paras, issues))

	out := buf.String()
	assert.Contains(t, out, "test.txt:1:4:")
	assert.Contains(t, out, "kanji-numeral")
	assert.Contains(t, out, "350")
	assert.Contains(t, out, "1 issues")
}
