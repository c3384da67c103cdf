package lint

// maskFiller replaces every masked rune. Full-width so masked text keeps
// the visual rhythm of the original when dumped for debugging.
const maskFiller = '＊'

// dialogue bracket pairs recognized by the masker.
var dialogueBrackets = map[rune]rune{
	'「': '」',
	'『': '』',
}

// MaskDialogue returns a copy of text in which every rune inside a
// completed dialogue bracket pair, brackets included, is replaced with a
// filler rune. The result always has exactly the same rune count as the
// input, so offsets computed against the masked text remain valid
// against the original.
//
// Unpaired brackets are left untouched: a dangling opener masks nothing,
// and a stray closer is ignored. Malformed nesting is not an error.
func MaskDialogue(text string) string {
	runes := []rune(text)

	type open struct {
		closer rune
		index  int
	}
	var stack []open
	masked := make([]bool, len(runes))

	for i, r := range runes {
		if closer, ok := dialogueBrackets[r]; ok {
			stack = append(stack, open{closer: closer, index: i})
			continue
		}
		if len(stack) > 0 && r == stack[len(stack)-1].closer {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for j := top.index; j <= i; j++ {
				masked[j] = true
			}
		}
	}

	out := make([]rune, len(runes))
	for i, r := range runes {
		if masked[i] {
			out[i] = maskFiller
		} else {
			out[i] = r
		}
	}
	return string(out)
}

// MaskedText applies dialogue masking when the config asks for it.
// Rules call this once at the top of Lint and scan the returned string.
func MaskedText(text string, cfg RuleConfig) string {
	if cfg.SkipDialogue {
		return MaskDialogue(text)
	}
	return text
}
