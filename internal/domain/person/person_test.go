package person

import (
	"testing"
	"time"
)

func TestNew_RequiresAName(t *testing.T) {
	if _, err := New("", "", "", "", ""); err == nil {
		t.Fatal("expected error for empty names")
	}
	if _, err := New("", "  ", " ", "", ""); err == nil {
		t.Fatal("expected error for whitespace-only names")
	}
	if _, err := New("", "Taro", "", "", ""); err != nil {
		t.Fatalf("given name alone should suffice: %v", err)
	}
	if _, err := New("", "", "Yamada", "", ""); err != nil {
		t.Fatalf("family name alone should suffice: %v", err)
	}
}

func TestNew_ComputesFullNameAndID(t *testing.T) {
	p, err := New("", " Taro ", "Yamada", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() == "" {
		t.Error("expected generated ID")
	}
	if p.FullName() != "Taro Yamada" {
		t.Errorf("FullName = %q, want %q", p.FullName(), "Taro Yamada")
	}
	if p.CreatedAt() == 0 {
		t.Error("expected createdAt to be set")
	}

	p2, _ := New("id1", "Taro", "Yamada", "山田太郎", "")
	if p2.ID() != "id1" {
		t.Errorf("ID = %q, want id1", p2.ID())
	}
	if p2.FullName() != "山田太郎" {
		t.Errorf("provided full name overridden: %q", p2.FullName())
	}
}

func TestSetNames_RecomputesFullName(t *testing.T) {
	p, _ := New("id1", "Taro", "Yamada", "", "")

	p.SetNames("Jiro", "Yamada", "", "")
	if p.FullName() != "Jiro Yamada" {
		t.Errorf("FullName = %q, want %q", p.FullName(), "Jiro Yamada")
	}

	p.SetNames("Jiro", "Yamada", "Custom Name", "")
	if p.FullName() != "Custom Name" {
		t.Errorf("FullName = %q, want %q", p.FullName(), "Custom Name")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	p, _ := New("id1", "Taro", "", "", "")

	if p.Expired(now) {
		t.Error("zero expiry must never expire")
	}

	p.SetExpiry(now.Add(-time.Hour).UnixMilli())
	if !p.Expired(now) {
		t.Error("past expiry should be expired")
	}

	p.SetExpiry(now.Add(time.Hour).UnixMilli())
	if p.Expired(now) {
		t.Error("future expiry should not be expired")
	}
}

func TestNameWords_GivenFirst(t *testing.T) {
	p, _ := New("id1", "Mary Ann", "Smith", "", "")
	words := p.NameWords()
	want := []string{"MARY", "ANN", "SMITH"}
	if len(words) != len(want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("words[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestSamePerson(t *testing.T) {
	tests := []struct {
		name string
		a, b Person
		want bool
	}{
		{
			name: "same full name different case",
			a:    mustNew(t, "Taro", "Yamada", ""),
			b:    mustNew(t, "taro", "yamada", "taro yamada"),
			want: true,
		},
		{
			name: "same given and family different full",
			a:    mustNew(t, "Taro", "Yamada", "Yamada Taro"),
			b:    mustNew(t, "Taro", "Yamada", "Taro Yamada"),
			want: true,
		},
		{
			name: "different people",
			a:    mustNew(t, "Taro", "Yamada", ""),
			b:    mustNew(t, "Jiro", "Yamada", ""),
			want: false,
		},
		{
			name: "missing family name never pair-matches",
			a:    mustNew(t, "Taro", "", "Taro A"),
			b:    mustNew(t, "Taro", "", "Taro B"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SamePerson(&tt.a, &tt.b); got != tt.want {
				t.Errorf("SamePerson = %v, want %v", got, tt.want)
			}
		})
	}
}

func mustNew(t *testing.T, given, family, full string) Person {
	t.Helper()
	p, err := New("", given, family, full, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}
