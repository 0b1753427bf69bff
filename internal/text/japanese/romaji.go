// Package japanese makes hiragana and kanji names discoverable by Latin-alphabet
// search: greedy kana-to-romaji transliteration, name-token expansion, and
// popularity ordering of CJK characters for filter selection.
package japanese

import (
	"strings"
	"unicode/utf8"
)

// tableEntry is one transliteration rule: the kana sequence to consume, the
// romaji it produces, and kana to push back onto the unread input (used by the
// small-tsu rules, which consume the geminate plus its following syllable's
// first kana and re-read that kana as part of the next match).
type tableEntry struct {
	kana     string
	romaji   string
	leftover string
}

// romajiTable is matched greedily longest-sequence-first. Digraphs (palatals)
// precede single kana; small-tsu gemination entries precede both.
var romajiTable = buildRomajiTable()

func buildRomajiTable() []tableEntry {
	base := []tableEntry{
		// palatalized syllables
		{"きゃ", "KYA", ""}, {"きゅ", "KYU", ""}, {"きょ", "KYO", ""},
		{"しゃ", "SHA", ""}, {"しゅ", "SHU", ""}, {"しょ", "SHO", ""},
		{"ちゃ", "CHA", ""}, {"ちゅ", "CHU", ""}, {"ちょ", "CHO", ""},
		{"にゃ", "NYA", ""}, {"にゅ", "NYU", ""}, {"にょ", "NYO", ""},
		{"ひゃ", "HYA", ""}, {"ひゅ", "HYU", ""}, {"ひょ", "HYO", ""},
		{"みゃ", "MYA", ""}, {"みゅ", "MYU", ""}, {"みょ", "MYO", ""},
		{"りゃ", "RYA", ""}, {"りゅ", "RYU", ""}, {"りょ", "RYO", ""},
		{"ぎゃ", "GYA", ""}, {"ぎゅ", "GYU", ""}, {"ぎょ", "GYO", ""},
		{"じゃ", "JA", ""}, {"じゅ", "JU", ""}, {"じょ", "JO", ""},
		{"びゃ", "BYA", ""}, {"びゅ", "BYU", ""}, {"びょ", "BYO", ""},
		{"ぴゃ", "PYA", ""}, {"ぴゅ", "PYU", ""}, {"ぴょ", "PYO", ""},

		{"あ", "A", ""}, {"い", "I", ""}, {"う", "U", ""}, {"え", "E", ""}, {"お", "O", ""},
		{"か", "KA", ""}, {"き", "KI", ""}, {"く", "KU", ""}, {"け", "KE", ""}, {"こ", "KO", ""},
		{"さ", "SA", ""}, {"し", "SHI", ""}, {"す", "SU", ""}, {"せ", "SE", ""}, {"そ", "SO", ""},
		{"た", "TA", ""}, {"ち", "CHI", ""}, {"つ", "TSU", ""}, {"て", "TE", ""}, {"と", "TO", ""},
		{"な", "NA", ""}, {"に", "NI", ""}, {"ぬ", "NU", ""}, {"ね", "NE", ""}, {"の", "NO", ""},
		{"は", "HA", ""}, {"ひ", "HI", ""}, {"ふ", "FU", ""}, {"へ", "HE", ""}, {"ほ", "HO", ""},
		{"ま", "MA", ""}, {"み", "MI", ""}, {"む", "MU", ""}, {"め", "ME", ""}, {"も", "MO", ""},
		{"や", "YA", ""}, {"ゆ", "YU", ""}, {"よ", "YO", ""},
		{"ら", "RA", ""}, {"り", "RI", ""}, {"る", "RU", ""}, {"れ", "RE", ""}, {"ろ", "RO", ""},
		{"わ", "WA", ""}, {"ゐ", "I", ""}, {"ゑ", "E", ""}, {"を", "O", ""}, {"ん", "N", ""},
		{"が", "GA", ""}, {"ぎ", "GI", ""}, {"ぐ", "GU", ""}, {"げ", "GE", ""}, {"ご", "GO", ""},
		{"ざ", "ZA", ""}, {"じ", "JI", ""}, {"ず", "ZU", ""}, {"ぜ", "ZE", ""}, {"ぞ", "ZO", ""},
		{"だ", "DA", ""}, {"ぢ", "JI", ""}, {"づ", "ZU", ""}, {"で", "DE", ""}, {"ど", "DO", ""},
		{"ば", "BA", ""}, {"び", "BI", ""}, {"ぶ", "BU", ""}, {"べ", "BE", ""}, {"ぼ", "BO", ""},
		{"ぱ", "PA", ""}, {"ぴ", "PI", ""}, {"ぷ", "PU", ""}, {"ぺ", "PE", ""}, {"ぽ", "PO", ""},

		// small vowels appear mid-name in loanword spellings
		{"ぁ", "A", ""}, {"ぃ", "I", ""}, {"ぅ", "U", ""}, {"ぇ", "E", ""}, {"ぉ", "O", ""},
		{"ー", "", ""}, // prolonged sound mark: long vowels collapse anyway
	}

	// Gemination: small tsu doubles the first consonant of the following
	// syllable. The entry consumes only the tsu and re-reads the next kana,
	// so っきょ resolves as K + KYO via the digraph rule.
	table := make([]tableEntry, 0, len(base)*2)
	for _, e := range base {
		if !isGeminable(e.romaji) {
			continue
		}
		first := e.romaji[:1]
		if strings.HasPrefix(e.romaji, "CH") {
			first = "T" // っち -> TCHI (Hepburn)
		}
		table = append(table, tableEntry{"っ" + e.kana, first, e.kana})
	}
	return append(table, base...)
}

// isGeminable reports whether a syllable's romaji can take a small-tsu
// doubled consonant: anything consonant-initial except the bare ん.
func isGeminable(s string) bool {
	if s == "" || s == "N" {
		return false
	}
	switch s[0] {
	case 'A', 'I', 'U', 'E', 'O':
		return false
	}
	return true
}

// longVowelSubs collapses doubled vowels after transliteration so spelling
// variants (TAROU, TARO) index identically. Order matters: OU before OO is
// irrelevant here since each pass is a plain replace-all.
var longVowelSubs = [][2]string{
	{"OU", "O"}, {"AA", "A"}, {"II", "I"}, {"UU", "U"}, {"EE", "E"}, {"OO", "O"},
}

// HiraganaToRomaji transliterates hiragana to romaji with greedy
// longest-prefix matching. Unmatched characters pass through literally;
// malformed input is never an error.
func HiraganaToRomaji(s string) string {
	var b strings.Builder
	rest := s
	for rest != "" {
		matched := false
		for _, e := range romajiTable {
			if strings.HasPrefix(rest, e.kana) {
				b.WriteString(e.romaji)
				rest = e.leftover + rest[len(e.kana):]
				matched = true
				break
			}
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(rest)
			b.WriteString(rest[:size])
			rest = rest[size:]
		}
	}
	out := b.String()
	for _, sub := range longVowelSubs {
		out = strings.ReplaceAll(out, sub[0], sub[1])
	}
	return out
}
