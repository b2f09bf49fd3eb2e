package novel

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParsePOV(t *testing.T) {
	tests := []struct {
		input   string
		want    POV
		wantErr bool
	}{
		{"first", POVFirst, false},
		{"1", POVFirst, false},
		{" Second ", POVSecond, false},
		{"2", POVSecond, false},
		{"THIRD", POVThird, false},
		{"3", POVThird, false},
		{"4", "", true},
		{"", "", true},
		{"fourth", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePOV(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePOV(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePOV(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPOVLabel(t *testing.T) {
	if got := POVThird.Label(); got != "Third" {
		t.Errorf("Label() = %q, want Third", got)
	}
	if POV("omniscient").Valid() {
		t.Error("Valid() should reject unknown point of view")
	}
}

func TestNew(t *testing.T) {
	n := New("  The Left Hand of Darkness ", " Hugo ", 1970)

	if n.Title != "The Left Hand of Darkness" {
		t.Errorf("Title = %q, want trimmed title", n.Title)
	}
	if n.Award != "Hugo" {
		t.Errorf("Award = %q, want Hugo", n.Award)
	}
	if n.POV != nil {
		t.Error("new novel should have nil POV")
	}
	if n.Read {
		t.Error("new novel should be unread")
	}
}

func TestNew_NormalizesUnicode(t *testing.T) {
	// "é" as a single code point vs "e" + combining acute accent
	composed := New("Caf\u00e9", "Hugo", 2000)
	decomposed := New("Cafe\u0301", "Hugo", 2000)

	if composed.Key() != decomposed.Key() {
		t.Errorf("keys differ: %q vs %q", composed.Title, decomposed.Title)
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Dune", "Dune"},
		{"  Dune ", "Dune"},
		{"A Deepness\n   in the Sky", "A Deepness in the Sky"},
		{"The\tLeft  Hand", "The Left Hand"},
		{"Caf\u0065\u0301", "Caf\u00e9"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTitle(tt.input); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestKey_NormalizesStoredTitle(t *testing.T) {
	stored := &Novel{Title: "Cafe\u0301 ", Year: 2000}
	scraped := New("Caf\u00e9", "Hugo", 2000)

	if stored.Key() != scraped.Key() {
		t.Errorf("keys differ: %q vs %q", stored.Key().Title, scraped.Key().Title)
	}
}

func TestUnionAwards(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"Hugo", "Nebula", "Hugo|Nebula"},
		{"Nebula", "Hugo", "Hugo|Nebula"},
		{"Hugo", "Hugo", "Hugo"},
		{"Hugo|Nebula", "Hugo", "Hugo|Nebula"},
		{"Nebula", "Hugo|Locus", "Hugo|Locus|Nebula"},
		{"", "Hugo", "Hugo"},
		{"Hugo||", "", "Hugo"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"+"+tt.b, func(t *testing.T) {
			if got := UnionAwards(tt.a, tt.b); got != tt.want {
				t.Errorf("UnionAwards(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHasAward(t *testing.T) {
	n := New("Dune", "Hugo|Nebula", 1966)

	if !n.HasAward("nebula") {
		t.Error("HasAward(nebula) = false, want true")
	}
	if n.HasAward("Locus") {
		t.Error("HasAward(Locus) = true, want false")
	}
}

func TestNovel_JSON(t *testing.T) {
	n := New("Hyperion", "Hugo", 1990)

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"pov":null`) {
		t.Errorf("unannotated novel should serialize pov as null, got %s", data)
	}

	n.SetPOV(POVFirst, true)
	data, err = json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Novel
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.POVString() != "first" || !decoded.Read {
		t.Errorf("decoded = %+v, want pov first and read", decoded)
	}
}
