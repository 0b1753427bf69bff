package text

import "unicode"

// Script classifies the writing system of a normalized name.
type Script int

const (
	// ScriptOther is anything not covered below (digits, mixed scripts).
	ScriptOther Script = iota
	// ScriptLatin is a pure Latin-alphabet name.
	ScriptLatin
	// ScriptSingleCJK is a single ideograph (the common-surname case).
	ScriptSingleCJK
	// ScriptMultiCJK is a run of two or more ideographs.
	ScriptMultiCJK
	// ScriptKana is pure hiragana (katakana folds to hiragana in Normalize).
	ScriptKana
)

// ClassifyScript classifies a normalized name string.
// Shared by the indexer and the ranker so the single- vs multi-ideograph
// surname distinction lives in exactly one place.
func ClassifyScript(s string) Script {
	if s == "" {
		return ScriptOther
	}
	latin, han, kana, n := true, true, true, 0
	for _, r := range s {
		n++
		if !unicode.Is(unicode.Latin, r) {
			latin = false
		}
		if !unicode.Is(unicode.Han, r) {
			han = false
		}
		if !unicode.Is(unicode.Hiragana, r) {
			kana = false
		}
	}
	switch {
	case latin:
		return ScriptLatin
	case han && n == 1:
		return ScriptSingleCJK
	case han:
		return ScriptMultiCJK
	case kana:
		return ScriptKana
	default:
		return ScriptOther
	}
}

// IsCJK reports whether r is a Han ideograph.
func IsCJK(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// IsCJKWord reports whether every rune of s is a Han ideograph.
func IsCJKWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}
