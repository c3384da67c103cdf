package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Iktahana/illusions-sub003/internal/lint"
)

// Kanji numeral grammar. Digit glyphs carry values 1-9; small units
// multiply the pending digit; large units close the accumulated block.
var (
	kanjiDigits = map[rune]int64{
		'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
		'六': 6, '七': 7, '八': 8, '九': 9,
	}
	kanjiSmallUnits = map[rune]int64{
		'十': 10, '百': 100, '千': 1000,
	}
	kanjiLargeUnits = map[rune]int64{
		'万': 10_000, '億': 100_000_000, '兆': 1_000_000_000_000,
	}
)

// isKanjiNumeral reports whether r can appear in a kanji numeral run.
// 〇 is included so positional spellings like 二〇二四 form one run;
// the parser rejects them, which keeps such runs unflagged.
func isKanjiNumeral(r rune) bool {
	if r == '〇' {
		return true
	}
	if _, ok := kanjiDigits[r]; ok {
		return true
	}
	if _, ok := kanjiSmallUnits[r]; ok {
		return true
	}
	_, ok := kanjiLargeUnits[r]
	return ok
}

// kanjiToValue parses a kanji numeral run into its value.
//
// Within one block the small units must appear in strictly decreasing
// magnitude (三百五十 ok, 三十五百 not). A large unit closes the block:
// the block total (implicit 1 when empty) is multiplied by the unit and
// added to the running total. Two adjacent digit glyphs, a non-numeral
// glyph, or non-decreasing large units invalidate the parse.
func kanjiToValue(runes []rune) (int64, bool) {
	if len(runes) == 0 {
		return 0, false
	}
	var total, block, digit int64
	var prevSmall, prevLarge int64
	for _, r := range runes {
		switch {
		case kanjiDigits[r] != 0:
			if digit != 0 {
				return 0, false
			}
			digit = kanjiDigits[r]
		case kanjiSmallUnits[r] != 0:
			u := kanjiSmallUnits[r]
			if prevSmall != 0 && u >= prevSmall {
				return 0, false
			}
			if digit == 0 {
				digit = 1
			}
			block += digit * u
			digit = 0
			prevSmall = u
		case kanjiLargeUnits[r] != 0:
			u := kanjiLargeUnits[r]
			if prevLarge != 0 && u >= prevLarge {
				return 0, false
			}
			blockTotal := block + digit
			if blockTotal == 0 {
				blockTotal = 1
			}
			total += blockTotal * u
			block, digit, prevSmall = 0, 0, 0
			prevLarge = u
		default:
			// 〇 and anything else: not parseable.
			return 0, false
		}
	}
	return total + block + digit, true
}

// valueToKanji renders a positive value as a kanji numeral, processing
// the value in 10,000-blocks and omitting the leading 一 for thousands,
// hundreds and tens within each block.
func valueToKanji(v int64) string {
	if v <= 0 {
		return ""
	}
	type large struct {
		unit  int64
		glyph string
	}
	larges := []large{
		{1_000_000_000_000, "兆"},
		{100_000_000, "億"},
		{10_000, "万"},
	}
	digitGlyphs := []string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

	var b strings.Builder
	writeBlock := func(n int64) {
		units := []large{{1000, "千"}, {100, "百"}, {10, "十"}}
		for _, u := range units {
			d := n / u.unit
			n %= u.unit
			if d == 0 {
				continue
			}
			if d > 1 {
				b.WriteString(digitGlyphs[d])
			}
			b.WriteString(u.glyph)
		}
		if n > 0 {
			b.WriteString(digitGlyphs[n])
		}
	}

	for _, l := range larges {
		if v < l.unit {
			continue
		}
		writeBlock(v / l.unit)
		b.WriteString(l.glyph)
		v %= l.unit
	}
	if v > 0 {
		writeBlock(v)
	}
	return b.String()
}

// numeralExceptions are idiomatic fixed phrases that must never be
// flagged: counters, month names, set expressions and place names.
var numeralExceptions = []string{
	// counters and native readings
	"一人", "二人", "一つ", "二つ", "三つ", "四つ", "五つ",
	"六つ", "七つ", "八つ", "九つ", "一日中", "一人前", "二十歳",
	// month names
	"一月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "十一月", "十二月",
	// set expressions
	"七夕", "一期一会", "一番", "一緒", "一切", "一方", "一部",
	"一体", "一瞬", "一般", "十八番", "四苦八苦", "百人一首",
	"三日月", "二言目", "一石二鳥", "八百屋", "千差万別",
	// place names
	"九州", "四国", "六本木", "八王子", "九十九里", "千葉", "三重",
}

// exceptionWindow bounds how far around a match the original text is
// searched for exception phrases, in runes.
const exceptionWindow = 8

// matchesException reports whether any exception phrase in the original
// text overlaps the [from, to) span.
func matchesException(original []rune, from, to int) bool {
	lo := from - exceptionWindow
	if lo < 0 {
		lo = 0
	}
	hi := to + exceptionWindow
	if hi > len(original) {
		hi = len(original)
	}
	window := original[lo:hi]
	for _, phrase := range numeralExceptions {
		for _, idx := range indexRunes(window, []rune(phrase)) {
			pFrom := lo + idx
			pTo := pFrom + len([]rune(phrase))
			if overlaps(from, to, pFrom, pTo) {
				return true
			}
		}
	}
	return false
}

// KanjiNumeralRule enforces the numeral convention for the manuscript's
// writing direction: horizontal text prefers Arabic numerals, vertical
// text prefers kanji numerals.
type KanjiNumeralRule struct {
	baseRule
}

// NewKanjiNumeralRule returns the numeral-convention rule.
func NewKanjiNumeralRule() *KanjiNumeralRule {
	return &KanjiNumeralRule{baseRule{
		id:    "kanji-numeral",
		name:  "数字表記",
		desc:  "書字方向に合わない数字表記（漢数字／算用数字）を指摘します",
		level: lint.L2,
		scope: lint.ScopeParagraph,
		def: lint.RuleConfig{
			Enabled:  true,
			Severity: lint.SeverityWarning,
			Options:  map[string]any{optDirection: DirectionHorizontal},
		},
	}}
}

// Lint scans for numeral runs that violate the configured convention.
// Unparseable runs are skipped silently, and matches overlapping an
// exception phrase in the original text are suppressed.
func (r *KanjiNumeralRule) Lint(text string, cfg lint.RuleConfig) []lint.Issue {
	original := []rune(text)
	scan := []rune(lint.MaskedText(text, cfg))
	direction := cfg.StringOption(optDirection, DirectionHorizontal)

	var issues []lint.Issue
	if direction == DirectionVertical {
		for i := 0; i < len(scan); {
			if !isASCIIDigit(scan[i]) {
				i++
				continue
			}
			end := runEnd(scan, i, isASCIIDigit)
			issues = append(issues, r.verticalIssue(scan, i, end, cfg)...)
			i = end
		}
		return issues
	}

	for i := 0; i < len(scan); {
		if !isKanjiNumeral(scan[i]) {
			i++
			continue
		}
		end := runEnd(scan, i, isKanjiNumeral)
		value, ok := kanjiToValue(scan[i:end])
		if ok && !matchesException(original, i, end) {
			issues = append(issues, lint.Issue{
				RuleID:     r.id,
				Severity:   cfg.Severity,
				Message:    fmt.Sprintf("横書きでは算用数字「%d」を使用してください", value),
				MessageKey: "kanji-numeral.use-arabic",
				From:       i,
				To:         end,
				Fix: &lint.Fix{
					Replacement: strconv.FormatInt(value, 10),
					Label:       "算用数字に変換",
				},
				GuidelineID: guidelineFor(r.id),
			})
		}
		i = end
	}
	return issues
}

func (r *KanjiNumeralRule) verticalIssue(scan []rune, from, to int, cfg lint.RuleConfig) []lint.Issue {
	// Runs too long for int64 are left alone.
	if to-from > 18 {
		return nil
	}
	value, err := strconv.ParseInt(string(scan[from:to]), 10, 64)
	if err != nil || value <= 0 {
		return nil
	}
	return []lint.Issue{{
		RuleID:     r.id,
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("縦書きでは漢数字「%s」を使用してください", valueToKanji(value)),
		MessageKey: "kanji-numeral.use-kanji",
		From:       from,
		To:         to,
		Fix: &lint.Fix{
			Replacement: valueToKanji(value),
			Label:       "漢数字に変換",
		},
		GuidelineID: guidelineFor(r.id),
	}}
}
