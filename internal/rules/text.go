package rules

import "unicode"

// Writing direction option shared by the numeral and width rules.
// Horizontal manuscripts prefer Arabic numerals and half-width
// alphanumerics; vertical manuscripts prefer kanji numerals.
const (
	optDirection        = "direction"
	DirectionHorizontal = "horizontal"
	DirectionVertical   = "vertical"
)

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isFullwidthDigit(r rune) bool { return r >= '０' && r <= '９' }

// isJapanese reports whether r belongs to the Japanese scripts the
// punctuation rules care about.
func isJapanese(r rune) bool {
	return unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) ||
		r == 'ー' || (r >= '、' && r <= '〟')
}

// runEnd locates the maximal run of runes satisfying pred starting at
// i. Returns the exclusive end index.
func runEnd(runes []rune, i int, pred func(rune) bool) int {
	j := i
	for j < len(runes) && pred(runes[j]) {
		j++
	}
	return j
}

// indexRunes reports all start offsets of needle within haystack.
func indexRunes(haystack, needle []rune) []int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}
	var out []int
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			out = append(out, i)
		}
	}
	return out
}

// overlaps reports whether [aFrom, aTo) and [bFrom, bTo) intersect.
func overlaps(aFrom, aTo, bFrom, bTo int) bool {
	return aFrom < bTo && bFrom < aTo
}
