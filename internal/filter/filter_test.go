package filter

import (
	"testing"

	"github.com/pfrederiksen/novel-search/internal/novel"
)

func boolPtr(b bool) *bool {
	return &b
}

func sampleNovels() []*novel.Novel {
	annotated := novel.New("The Left Hand of Darkness", "Hugo|Nebula", 1970)
	annotated.SetPOV(novel.POVFirst, true)

	third := novel.New("Dune", "Hugo", 1966)
	third.SetPOV(novel.POVThird, false)

	return []*novel.Novel{
		third,
		annotated,
		novel.New("Rendezvous with Rama", "Nebula", 1974),
		novel.New("The Dispossessed", "Hugo|Nebula", 1975),
	}
}

func titles(novels []*novel.Novel) []string {
	out := make([]string, len(novels))
	for i, n := range novels {
		out[i] = n.Title
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   []string
	}{
		{
			name:   "empty filter matches all",
			filter: NewFilter(),
			want:   []string{"Dune", "The Left Hand of Darkness", "Rendezvous with Rama", "The Dispossessed"},
		},
		{
			name:   "award is case-insensitive and matches unions",
			filter: &Filter{Awards: []string{"nebula"}},
			want:   []string{"The Left Hand of Darkness", "Rendezvous with Rama", "The Dispossessed"},
		},
		{
			name:   "year range inclusive",
			filter: &Filter{YearFrom: 1970, YearTo: 1974},
			want:   []string{"The Left Hand of Darkness", "Rendezvous with Rama"},
		},
		{
			name:   "open-ended year range",
			filter: &Filter{YearFrom: 1974},
			want:   []string{"Rendezvous with Rama", "The Dispossessed"},
		},
		{
			name:   "unannotated only",
			filter: &Filter{POVs: []string{POVNone}},
			want:   []string{"Rendezvous with Rama", "The Dispossessed"},
		},
		{
			name:   "several points of view",
			filter: &Filter{POVs: []string{"first", "third"}},
			want:   []string{"Dune", "The Left Hand of Darkness"},
		},
		{
			name:   "read",
			filter: &Filter{Read: boolPtr(true)},
			want:   []string{"The Left Hand of Darkness"},
		},
		{
			name:   "unread",
			filter: &Filter{Read: boolPtr(false)},
			want:   []string{"Dune", "Rendezvous with Rama", "The Dispossessed"},
		},
		{
			name:   "title substring",
			filter: &Filter{Title: "the d"},
			want:   []string{"The Dispossessed"},
		},
		{
			name:   "criteria combine",
			filter: &Filter{Awards: []string{"Hugo"}, POVs: []string{POVNone}},
			want:   []string{"The Dispossessed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(tt.filter.Apply(sampleNovels()))
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Apply()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilter_NilMatchesAll(t *testing.T) {
	var f *Filter
	if got := f.Apply(sampleNovels()); len(got) != 4 {
		t.Errorf("nil filter returned %d novels, want 4", len(got))
	}
}

func TestFilter_SetPOVs(t *testing.T) {
	f := NewFilter()

	if err := f.SetPOVs([]string{"1", " None ", "third", ""}); err != nil {
		t.Fatalf("SetPOVs() error: %v", err)
	}
	want := []string{"first", "none", "third"}
	if len(f.POVs) != len(want) {
		t.Fatalf("POVs = %v, want %v", f.POVs, want)
	}
	for i := range want {
		if f.POVs[i] != want[i] {
			t.Errorf("POVs[%d] = %q, want %q", i, f.POVs[i], want[i])
		}
	}

	if err := f.SetPOVs([]string{"omniscient"}); err == nil {
		t.Error("SetPOVs() expected error for unknown point of view")
	}
}

func TestFilter_Describe(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{"empty", NewFilter(), "all novels"},
		{"years", &Filter{YearFrom: 1990, YearTo: 2000}, "years: 1990-2000"},
		{"from", &Filter{YearFrom: 1990}, "years: 1990 onwards"},
		{"combined", &Filter{Awards: []string{"Hugo"}, Read: boolPtr(false), Title: "mars"},
			`award: Hugo; unread; title contains "mars"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
