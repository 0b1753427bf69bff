package indexer

import (
	"fmt"
	"reflect"
	"sort"
	"testing"

	"go.uber.org/zap"

	"github.com/relief-cloud/persondex/internal/domain/person"
)

func newTestPerson(t *testing.T, given, family, alternate string) *person.Person {
	t.Helper()
	p, err := person.New("", given, family, "", alternate)
	if err != nil {
		t.Fatalf("person.New: %v", err)
	}
	return &p
}

func tokenSet(p *person.Person) map[string]bool {
	set := make(map[string]bool, len(p.Tokens()))
	for _, tok := range p.Tokens() {
		set[tok] = true
	}
	return set
}

func TestUpdateIndexProperties_PrefixesNames(t *testing.T) {
	ix := New(zap.NewNop())
	p := newTestPerson(t, "ABC", "DEF", "")

	ix.UpdateIndexProperties(p)

	want := []string{"A", "AB", "ABC", "D", "DE", "DEF"}
	if !reflect.DeepEqual(p.Tokens(), want) {
		t.Errorf("tokens %v, want %v", p.Tokens(), want)
	}
}

func TestUpdateIndexProperties_AlternateNamesWholeWordOnly(t *testing.T) {
	ix := New(zap.NewNop())
	p := newTestPerson(t, "ABC", "", "XYZ")

	ix.UpdateIndexProperties(p)

	set := tokenSet(p)
	if !set["XYZ"] {
		t.Error("alternate name word missing")
	}
	if set["X"] || set["XY"] {
		t.Errorf("alternate names must not be prefix-indexed: %v", p.Tokens())
	}
}

func TestUpdateIndexProperties_Idempotent(t *testing.T) {
	ix := New(zap.NewNop())
	p := newTestPerson(t, "María", "O'Hearn", "Mo")

	ix.UpdateIndexProperties(p)
	first := append([]string(nil), p.Tokens()...)
	ix.UpdateIndexProperties(p)

	if !reflect.DeepEqual(first, p.Tokens()) {
		t.Errorf("tokens changed on recompute: %v != %v", first, p.Tokens())
	}
}

func TestUpdateIndexProperties_Sorted(t *testing.T) {
	ix := New(zap.NewNop())
	p := newTestPerson(t, "Zoe", "Adams", "")

	ix.UpdateIndexProperties(p)

	if !sort.StringsAreSorted(p.Tokens()) {
		t.Errorf("tokens not sorted: %v", p.Tokens())
	}
}

func TestUpdateIndexProperties_CJKCharacters(t *testing.T) {
	ix := New(zap.NewNop())
	p := newTestPerson(t, "太郎", "山田", "")

	ix.UpdateIndexProperties(p)

	set := tokenSet(p)
	for _, tok := range []string{"山", "田", "太", "郎", "山田", "太郎"} {
		if !set[tok] {
			t.Errorf("missing token %q in %v", tok, p.Tokens())
		}
	}
}

func TestUpdateIndexProperties_KanaRomajiAndConcatenations(t *testing.T) {
	ix := New(zap.NewNop())
	p := newTestPerson(t, "たろう", "やまだ", "")

	ix.UpdateIndexProperties(p)

	set := tokenSet(p)
	for _, tok := range []string{"TARO", "YAMADA", "たろうやまだ", "やまだたろう"} {
		if !set[tok] {
			t.Errorf("missing token %q in %v", tok, p.Tokens())
		}
	}
}

func TestUpdateIndexProperties_CapsTokens(t *testing.T) {
	ix := New(zap.NewNop())
	given := ""
	for i := 0; i < 30; i++ {
		given += fmt.Sprintf("W%02dLONGNAME ", i) // prefixes diverge at rune 2
	}
	p := newTestPerson(t, given, "", "")

	ix.UpdateIndexProperties(p)

	if len(p.Tokens()) != person.MaxTokens {
		t.Errorf("got %d tokens, want cap %d", len(p.Tokens()), person.MaxTokens)
	}
	if !sort.StringsAreSorted(p.Tokens()) {
		t.Error("capped tokens must stay sorted")
	}
}
