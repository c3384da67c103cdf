package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKanjiToValue(t *testing.T) {
	cases := []struct {
		in    string
		want  int64
		valid bool
	}{
		{"一", 1, true},
		{"十", 10, true},
		{"十五", 15, true},
		{"三百五十", 350, true},
		{"千二百三十四", 1234, true},
		{"一万", 10_000, true},
		{"万", 10_000, true}, // implicit 1 before a large unit
		{"二万三千", 23_000, true},
		{"一億二千万", 120_000_000, true},
		{"三兆", 3_000_000_000_000, true},
		{"百二十一", 121, true},
		// invalid parses
		{"", 0, false},
		{"二三", 0, false},   // adjacent digits
		{"三十五百", 0, false}, // small units not decreasing
		{"十十", 0, false},   // repeated small unit
		{"万億", 0, false},   // large units not decreasing
		{"二〇二四", 0, false}, // positional zero spelling
		{"一あ", 0, false},   // non-numeral glyph
	}
	for _, tc := range cases {
		got, ok := kanjiToValue([]rune(tc.in))
		if tc.valid {
			require.True(t, ok, "kanjiToValue(%q) should parse", tc.in)
			assert.Equal(t, tc.want, got, "kanjiToValue(%q)", tc.in)
		} else {
			assert.False(t, ok, "kanjiToValue(%q) should not parse", tc.in)
		}
	}
}

func TestValueToKanji(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1, "一"},
		{10, "十"},
		{15, "十五"},
		{350, "三百五十"},
		{1234, "千二百三十四"},
		{10_000, "一万"},
		{23_000, "二万三千"},
		{120_000_000, "一億二千万"},
		{100_000_001, "一億一"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, valueToKanji(tc.in), "valueToKanji(%d)", tc.in)
	}
}

func TestKanjiNumeralRoundTrip(t *testing.T) {
	v, ok := kanjiToValue([]rune("三百五十"))
	require.True(t, ok)
	require.EqualValues(t, 350, v)
	assert.Equal(t, "三百五十", valueToKanji(v))
}

func TestKanjiNumeralHorizontalFlagsRun(t *testing.T) {
	r := NewKanjiNumeralRule()
	issues := r.Lint("在庫は三百五十個ある", r.DefaultConfig())
	require.Len(t, issues, 1)
	is := issues[0]
	assert.Equal(t, "kanji-numeral", is.RuleID)
	assert.Equal(t, 3, is.From)
	assert.Equal(t, 7, is.To)
	require.NotNil(t, is.Fix)
	assert.Equal(t, "350", is.Fix.Replacement)
}

func TestKanjiNumeralExceptionPhrasesSuppressed(t *testing.T) {
	r := NewKanjiNumeralRule()
	cfg := r.DefaultConfig()
	for _, text := range []string{
		"部屋には一人だけ残った",
		"今日は七夕の夜だ",
		"十月の九州はまだ暑い",
		"一緒に行こう",
	} {
		issues := r.Lint(text, cfg)
		for _, is := range issues {
			t.Errorf("exception phrase in %q was flagged: %+v", text, is)
		}
	}
}

func TestKanjiNumeralExceptionDoesNotShadowOtherRuns(t *testing.T) {
	r := NewKanjiNumeralRule()
	// 七夕 is exempt; the separate 三百五十 run is not.
	issues := r.Lint("七夕に三百五十人が集まった", r.DefaultConfig())
	require.Len(t, issues, 1)
	assert.Equal(t, "350", issues[0].Fix.Replacement)
}

func TestKanjiNumeralUnparseableRunSkipped(t *testing.T) {
	r := NewKanjiNumeralRule()
	// 二〇二四 is a positional spelling the grammar rejects.
	assert.Empty(t, r.Lint("二〇二四年の話", r.DefaultConfig()))
}

func TestKanjiNumeralVerticalFlagsASCIIDigits(t *testing.T) {
	r := NewKanjiNumeralRule()
	cfg := r.DefaultConfig()
	cfg.Options[optDirection] = DirectionVertical

	issues := r.Lint("あれから350日が過ぎた", cfg)
	require.Len(t, issues, 1)
	is := issues[0]
	assert.Equal(t, 4, is.From)
	assert.Equal(t, 7, is.To)
	require.NotNil(t, is.Fix)
	assert.Equal(t, "三百五十", is.Fix.Replacement)
}

func TestKanjiNumeralVerticalIgnoresKanji(t *testing.T) {
	r := NewKanjiNumeralRule()
	cfg := r.DefaultConfig()
	cfg.Options[optDirection] = DirectionVertical
	assert.Empty(t, r.Lint("在庫は三百五十個ある", cfg))
}

func TestKanjiNumeralSkipDialogue(t *testing.T) {
	r := NewKanjiNumeralRule()
	cfg := r.DefaultConfig()
	cfg.SkipDialogue = true

	issues := r.Lint("「三百五十だ」と言うと三百五十が返ってきた", cfg)
	require.Len(t, issues, 1, "quoted numeral must be masked away")
	// Offsets stay valid against the original text.
	assert.Equal(t, 11, issues[0].From)
	assert.Equal(t, 15, issues[0].To)
}
