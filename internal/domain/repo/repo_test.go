package repo

import (
	"strings"
	"testing"
)

func TestNew_NameValidation(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"quake2026", false},
		{"haiti-earthquake", false},
		{"a", false},
		{"", true},
		{"UPPER", true},
		{"has space", true},
		{"uni/code", true},
		{strings.Repeat("x", 65), true},
	}

	for _, tt := range tests {
		_, err := New(tt.name, "title")
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	r, err := New("quake2026", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title() != "quake2026" {
		t.Errorf("Title = %q, want name fallback", r.Title())
	}
	if !r.Activated() {
		t.Error("new repositories must start activated")
	}
	if r.CreatedAt() == 0 {
		t.Error("expected createdAt to be set")
	}
}

func TestWithActivation(t *testing.T) {
	r, _ := New("quake2026", "2026 Coastal Earthquake")

	off := r.WithActivation(false)
	if off.Activated() {
		t.Error("expected deactivated copy")
	}
	if !r.Activated() {
		t.Error("original must be unchanged")
	}
	if on := off.WithActivation(true); !on.Activated() {
		t.Error("expected reactivated copy")
	}
}
