// Package filter narrows a novel collection for listing.
//
// Criteria combine with AND; within a list criterion (awards, points of view)
// any entry may match. An empty Filter matches every novel.
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Awards = []string{"Nebula"}
//	f.YearFrom, f.YearTo, _ = filter.ParseYearRange("2000-2010")
//	f.POVs = []string{filter.POVNone}
//	pending := f.Apply(novels)
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/novel-search/internal/novel"
)

// POVNone matches novels that have not been annotated yet
const POVNone = "none"

// Filter represents novel filtering criteria
type Filter struct {
	// Award labels, case-insensitive; a "Hugo|Nebula" novel matches either
	Awards []string `json:"awards,omitempty"`

	// Inclusive year bounds, 0 means unbounded
	YearFrom int `json:"year_from,omitempty"`
	YearTo   int `json:"year_to,omitempty"`

	// Points of view ("first", "second", "third" or "none")
	POVs []string `json:"povs,omitempty"`

	// Read status, nil matches both
	Read *bool `json:"read,omitempty"`

	// Case-insensitive title substring
	Title string `json:"title,omitempty"`
}

// NewFilter creates a filter that matches every novel
func NewFilter() *Filter {
	return &Filter{
		Awards: []string{},
		POVs:   []string{},
	}
}

// SetPOVs validates and stores point-of-view criteria
func (f *Filter) SetPOVs(values []string) error {
	povs := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if v != POVNone {
			p, err := novel.ParsePOV(v)
			if err != nil {
				return err
			}
			v = string(p)
		}
		povs = append(povs, v)
	}
	f.POVs = povs
	return nil
}

// IsEmpty reports whether the filter has no criteria
func (f *Filter) IsEmpty() bool {
	return len(f.Awards) == 0 &&
		f.YearFrom == 0 && f.YearTo == 0 &&
		len(f.POVs) == 0 &&
		f.Read == nil &&
		strings.TrimSpace(f.Title) == ""
}

// Matches reports whether a novel satisfies every criterion
func (f *Filter) Matches(n *novel.Novel) bool {
	if f == nil {
		return true
	}

	if len(f.Awards) > 0 {
		found := false
		for _, a := range f.Awards {
			if n.HasAward(a) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.YearFrom > 0 && n.Year < f.YearFrom {
		return false
	}
	if f.YearTo > 0 && n.Year > f.YearTo {
		return false
	}

	if len(f.POVs) > 0 {
		want := n.POVString()
		if want == "" {
			want = POVNone
		}
		found := false
		for _, p := range f.POVs {
			if p == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Read != nil && n.Read != *f.Read {
		return false
	}

	if title := strings.TrimSpace(f.Title); title != "" {
		if !strings.Contains(strings.ToLower(n.Title), strings.ToLower(title)) {
			return false
		}
	}

	return true
}

// Apply returns the novels that match, preserving order
func (f *Filter) Apply(novels []*novel.Novel) []*novel.Novel {
	if f == nil || f.IsEmpty() {
		return novels
	}

	filtered := make([]*novel.Novel, 0)
	for _, n := range novels {
		if f.Matches(n) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// Describe returns a human-readable summary of the active criteria
func (f *Filter) Describe() string {
	if f == nil || f.IsEmpty() {
		return "all novels"
	}

	parts := make([]string, 0)
	if len(f.Awards) > 0 {
		parts = append(parts, "award: "+strings.Join(f.Awards, ", "))
	}
	switch {
	case f.YearFrom > 0 && f.YearTo > 0:
		parts = append(parts, fmt.Sprintf("years: %d-%d", f.YearFrom, f.YearTo))
	case f.YearFrom > 0:
		parts = append(parts, fmt.Sprintf("years: %d onwards", f.YearFrom))
	case f.YearTo > 0:
		parts = append(parts, fmt.Sprintf("years: up to %d", f.YearTo))
	}
	if len(f.POVs) > 0 {
		parts = append(parts, "pov: "+strings.Join(f.POVs, ", "))
	}
	if f.Read != nil {
		if *f.Read {
			parts = append(parts, "read")
		} else {
			parts = append(parts, "unread")
		}
	}
	if title := strings.TrimSpace(f.Title); title != "" {
		parts = append(parts, fmt.Sprintf("title contains %q", title))
	}

	return strings.Join(parts, "; ")
}
