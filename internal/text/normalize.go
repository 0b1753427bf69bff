// Package text canonicalizes name strings into comparable words.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes and drops combining marks (DUPONT, Élodie -> ELODIE).
var stripAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a name or query string: Unicode-normalizes, folds
// full/half-width forms, uppercases, elides apostrophes, reduces punctuation
// and whitespace runs to single spaces, and converts katakana to hiragana so
// a name typed in either kana script compares identically.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))

	if ContainsJapanese(s) {
		// NFKC folds half-width katakana and full-width Latin while keeping
		// dakuten/handakuten composed (stripping marks would turn ガ into カ).
		s = norm.NFKC.String(s)
		s = strings.ToUpper(s)
		s = katakanaToHiragana(s)
	} else {
		out, _, err := transform.String(stripAccents, s)
		if err == nil {
			s = out
		}
	}

	s = elideApostrophes(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		} else {
			space = true
		}
	}
	return b.String()
}

// QueryWords splits normalized text on whitespace, preserving input order.
func QueryWords(s string) []string {
	return strings.Fields(Normalize(s))
}

// elideApostrophes joins letters around an apostrophe (O'HEARN -> OHEARN)
// instead of letting the punctuation pass split the word in two.
func elideApostrophes(s string) string {
	if !strings.ContainsAny(s, "'’") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\'' || r == '’' {
			return -1
		}
		return r
	}, s)
}

// katakanaToHiragana shifts katakana codepoints into the hiragana block.
// The prolonged sound mark and characters without hiragana counterparts
// pass through unchanged.
func katakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x30A1 && r <= 0x30F6 {
			return r - 0x60
		}
		return r
	}, s)
}

// ContainsJapanese reports whether s contains hiragana, katakana (full or
// half width), the prolonged sound mark, or full-width Latin forms.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Hiragana, r):
			return true
		case unicode.Is(unicode.Katakana, r):
			return true
		case r == 0x30FC: // ー
			return true
		case r >= 0xFF01 && r <= 0xFF9F: // full-width forms, half-width katakana
			return true
		}
	}
	return false
}
