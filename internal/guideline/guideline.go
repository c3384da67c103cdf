// Package guideline holds the static catalog of published Japanese
// notation standards and the mapping from rule ids to the standard each
// rule enforces.
package guideline

// Guideline is a read-only catalog entry for a published style standard.
type Guideline struct {
	ID          string
	Name        string
	Publisher   string
	Year        *int // nil when the standard has no single edition year
	License     string
	Description string
}

func year(y int) *int { return &y }

// Catalog lists every standard the rule set can reference.
var Catalog = []Guideline{
	{
		ID:          "jtf-style",
		Name:        "JTF日本語標準スタイルガイド",
		Publisher:   "日本翻訳連盟",
		Year:        year(2019),
		License:     "CC BY-NC-SA",
		Description: "実務翻訳向けの表記統一基準。数字・記号・カタカナ表記の規定を含む。",
	},
	{
		ID:          "kisha-handbook",
		Name:        "記者ハンドブック",
		Publisher:   "共同通信社",
		Year:        year(2022),
		License:     "proprietary",
		Description: "新聞表記の標準。横書きでの算用数字使用、句読点の用法を規定。",
	},
	{
		ID:          "hyoki-rulebook",
		Name:        "日本語表記ルールブック",
		Publisher:   "日本エディタースクール",
		Year:        year(2012),
		License:     "proprietary",
		Description: "出版編集の実務表記基準。三点リーダー・ダーシの用法を規定。",
	},
	{
		ID:          "koyobun",
		Name:        "公用文作成の考え方",
		Publisher:   "文化庁",
		Year:        year(2022),
		License:     "public-domain",
		Description: "公用文の表記基準。送り仮名・数字・符号の用法を規定。",
	},
	{
		ID:          "genko-sahou",
		Name:        "原稿作法（縦書き原稿用紙の慣行）",
		Publisher:   "",
		Year:        nil,
		License:     "public-domain",
		Description: "小説原稿の伝統的な作法。段落冒頭の全角空白、会話文の括弧、縦書きでの漢数字。",
	},
}

// byID is built once from Catalog.
var byID = func() map[string]Guideline {
	m := make(map[string]Guideline, len(Catalog))
	for _, g := range Catalog {
		m[g.ID] = g
	}
	return m
}()

// Lookup returns the guideline with the given id.
func Lookup(id string) (Guideline, bool) {
	g, ok := byID[id]
	return g, ok
}

// ruleGuidelines maps rule ids to the guideline each enforces. Rules
// absent from this map are universal: they apply regardless of which
// guidelines the current mode selects.
var ruleGuidelines = map[string]string{
	"kanji-numeral":             "kisha-handbook",
	"digit-grouping":            "kisha-handbook",
	"ellipsis-style":            "hyoki-rulebook",
	"dash-style":                "hyoki-rulebook",
	"exclamation-space":         "hyoki-rulebook",
	"halfwidth-katakana":        "jtf-style",
	"fullwidth-alnum":           "jtf-style",
	"paragraph-indent":          "genko-sahou",
	"closing-quote-punctuation": "genko-sahou",
	"comma-style":               "koyobun",
	"period-style":              "koyobun",
	"ellipsis-consistency":      "hyoki-rulebook",
	"dash-consistency":          "hyoki-rulebook",
	"indent-consistency":        "genko-sahou",
}

// ForRule returns the guideline id the rule enforces, or "" for
// universal rules.
func ForRule(ruleID string) string {
	return ruleGuidelines[ruleID]
}
