package japanese

import "unicode"

// IsHiraganaWord reports whether every rune of s is hiragana.
func IsHiraganaWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.Hiragana, r) {
			return false
		}
	}
	return true
}

// AdditionalTokens expands a person's name tokens for indexing: each pure
// hiragana token contributes its romaji transliteration, and when the set is
// exactly two all-hiragana tokens, both orderings of their direct
// concatenation are added so a name typed as one unbroken kana run
// (family+given or given+family) still matches. A non-hiragana token passes
// through without romaji and disables the concatenation step.
func AdditionalTokens(tokens []string) []string {
	var out []string
	allHiragana := len(tokens) > 0
	for _, t := range tokens {
		if !IsHiraganaWord(t) {
			allHiragana = false
			continue
		}
		if r := HiraganaToRomaji(t); r != "" && r != t {
			out = append(out, r)
		}
	}
	if allHiragana && len(tokens) == 2 {
		out = append(out, tokens[0]+tokens[1], tokens[1]+tokens[0])
	}
	return out
}
