package japanese

import "testing"

func TestHiraganaToRomaji(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"あ", "A"},
		{"か", "KA"},
		{"し", "SHI"},
		{"たろう", "TARO"},   // long vowel OU collapses
		{"やまだ", "YAMADA"},
		{"しゃ", "SHA"},     // digraph beats single kana
		{"きょうこ", "KYOKO"}, // digraph plus long vowel
		{"ぐっち", "GUTCHI"}, // small tsu before CHI doubles as T
		{"はっとり", "HATTORI"},
		{"がんじー", "GANJI"}, // prolonged sound mark dropped
		{"ゆうき", "YUKI"},
		{"おおの", "ONO"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := HiraganaToRomaji(tt.in); got != tt.want {
			t.Errorf("HiraganaToRomaji(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHiraganaToRomaji_PassThrough(t *testing.T) {
	// Non-kana input is never an error, it passes through literally.
	if got := HiraganaToRomaji("X田Y"); got != "X田Y" {
		t.Errorf("got %q", got)
	}
	// Trailing small tsu has no following syllable to geminate.
	if got := HiraganaToRomaji("あっ"); got != "Aっ" {
		t.Errorf("got %q", got)
	}
}

func TestPopularity(t *testing.T) {
	if Popularity("田") != 965 {
		t.Errorf("expected 田 to be the most common name character")
	}
	if Popularity("zzz") != 0 {
		t.Errorf("unknown token must be 0")
	}
	if Popularity("山田") != 0 {
		t.Errorf("multi-character token must be 0")
	}
}

func TestSortedByPopularity(t *testing.T) {
	got := SortedByPopularity([]string{"田", "郎", "山"})
	want := []string{"郎", "山", "田"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSortedByPopularity_StableForUnknowns(t *testing.T) {
	got := SortedByPopularity([]string{"B", "A", "田"})
	// Unknown tokens keep their relative order and precede known ones.
	want := []string{"B", "A", "田"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIsHiraganaWord(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"たろう", true},
		{"た", true},
		{"タロウ", false},
		{"た郎", false},
		{"TARO", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHiraganaWord(tt.in); got != tt.want {
			t.Errorf("IsHiraganaWord(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAdditionalTokens(t *testing.T) {
	got := AdditionalTokens([]string{"やまだ", "たろう"})
	want := map[string]bool{
		"YAMADA":   true,
		"TARO":     true,
		"やまだたろう":   true,
		"たろうやまだ":   true,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want keys %v", got, want)
	}
	for _, tok := range got {
		if !want[tok] {
			t.Errorf("unexpected token %q", tok)
		}
	}
}

func TestAdditionalTokens_MixedScripts(t *testing.T) {
	// A non-hiragana token contributes nothing and disables concatenation.
	got := AdditionalTokens([]string{"山田", "たろう"})
	if len(got) != 1 || got[0] != "TARO" {
		t.Fatalf("got %v, want [TARO]", got)
	}
}

func TestAdditionalTokens_SingleToken(t *testing.T) {
	got := AdditionalTokens([]string{"たろう"})
	if len(got) != 1 || got[0] != "TARO" {
		t.Fatalf("got %v, want [TARO]", got)
	}
}

func TestAdditionalTokens_ThreeTokens_NoConcatenation(t *testing.T) {
	got := AdditionalTokens([]string{"やまだ", "たろう", "すけ"})
	for _, tok := range got {
		if tok == "やまだたろう" || tok == "たろうやまだ" {
			t.Errorf("concatenation must only apply to exactly two tokens, got %v", got)
		}
	}
}
