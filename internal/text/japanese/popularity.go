package japanese

import "sort"

// charPopularity maps individual CJK characters to relative frequency counts
// in Japanese personal names. Rarer characters are better disambiguating
// equality filters, so the query executor tries them first. The counts only
// need to order characters; absolute scale is irrelevant.
//
// Derived from surname/given-name frequency lists; characters absent from the
// table count as 0 (rarest).
var charPopularity = map[string]int{
	"田": 965, "藤": 683, "山": 662, "野": 555, "川": 471,
	"木": 445, "井": 400, "村": 399, "本": 362, "中": 353,
	"子": 350, "原": 311, "上": 295, "島": 295, "下": 248,
	"口": 228, "橋": 228, "大": 226, "佐": 224, "美": 224,
	"成": 223, "部": 217, "高": 207, "松": 204, "林": 187,
	"石": 174, "前": 143, "加": 142, "和": 140, "小": 138,
	"沢": 134, "谷": 129, "平": 128, "瀬": 119, "清": 115,
	"一": 111, "西": 109, "崎": 106, "太": 105, "内": 104,
	"郎": 102, "久": 101, "古": 98, "岡": 96, "金": 94,
	"宮": 93, "吉": 91, "長": 89, "阿": 86, "東": 84,
}

// Popularity returns the frequency count for a token, or 0 when the token is
// absent from the table (multi-character tokens are always absent).
func Popularity(token string) int {
	return charPopularity[token]
}

// SortedByPopularity returns the tokens stably sorted ascending by frequency,
// so the rarest (most selective) tokens come first.
func SortedByPopularity(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	sort.SliceStable(out, func(i, j int) bool {
		return Popularity(out[i]) < Popularity(out[j])
	})
	return out
}
