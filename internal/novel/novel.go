package novel

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// AwardSeparator joins the labels of a novel nominated for several awards.
const AwardSeparator = "|"

// POV is the narrative point of view of a novel
type POV string

const (
	POVFirst  POV = "first"
	POVSecond POV = "second"
	POVThird  POV = "third"
)

// POVs lists the valid points of view in display order
var POVs = []POV{POVFirst, POVSecond, POVThird}

// ParsePOV accepts either the name ("first") or the ordinal ("1") of a point of view
func ParsePOV(s string) (POV, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "1":
		return POVFirst, nil
	case "second", "2":
		return POVSecond, nil
	case "third", "3":
		return POVThird, nil
	default:
		return "", fmt.Errorf("invalid point of view: %q", s)
	}
}

// Valid reports whether p is one of the known points of view
func (p POV) Valid() bool {
	for _, v := range POVs {
		if p == v {
			return true
		}
	}
	return false
}

// Label returns the capitalized display form, e.g. "First"
func (p POV) Label() string {
	return cases.Title(language.English).String(string(p))
}

// Novel is a single award nomination, annotated by hand after collection
type Novel struct {
	Title string `json:"title"`
	Award string `json:"award"`
	Year  int    `json:"year"`
	POV   *POV   `json:"pov"`
	Read  bool   `json:"read"`
}

// Key identifies a novel within a collection
type Key struct {
	Title string
	Year  int
}

func (k Key) String() string {
	return fmt.Sprintf("%s (%d)", k.Title, k.Year)
}

// New creates an unannotated novel. The title goes through NormalizeTitle so
// the same title scraped with different Unicode compositions keys identically.
func New(title, award string, year int) *Novel {
	return &Novel{
		Title: NormalizeTitle(title),
		Award: strings.TrimSpace(award),
		Year:  year,
	}
}

// NormalizeTitle collapses runs of whitespace to single spaces, trims the
// ends and applies Unicode NFC
func NormalizeTitle(title string) string {
	return norm.NFC.String(strings.Join(strings.Fields(title), " "))
}

// Key returns the (title, year) identity of the novel. The title is
// normalized, so records loaded from older or hand-edited files match
// freshly scraped ones.
func (n *Novel) Key() Key {
	return Key{Title: NormalizeTitle(n.Title), Year: n.Year}
}

// Annotated reports whether a point of view has been assigned
func (n *Novel) Annotated() bool {
	return n.POV != nil
}

// SetPOV assigns the point of view and read status
func (n *Novel) SetPOV(p POV, read bool) {
	n.POV = &p
	n.Read = read
}

// POVString returns the point of view or "" when unannotated
func (n *Novel) POVString() string {
	if n.POV == nil {
		return ""
	}
	return string(*n.POV)
}

// Awards returns the individual award labels
func (n *Novel) Awards() []string {
	return splitAwards(n.Award)
}

// HasAward reports whether label is one of the novel's awards (case-insensitive)
func (n *Novel) HasAward(label string) bool {
	for _, a := range n.Awards() {
		if strings.EqualFold(a, label) {
			return true
		}
	}
	return false
}

// UnionAwards merges two award fields into a sorted, pipe-joined set of labels
func UnionAwards(a, b string) string {
	seen := make(map[string]bool)
	labels := make([]string, 0, 2)
	for _, label := range append(splitAwards(a), splitAwards(b)...) {
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return strings.Join(labels, AwardSeparator)
}

func splitAwards(award string) []string {
	parts := strings.Split(award, AwardSeparator)
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// clone returns a copy that does not share the POV pointer
func (n *Novel) clone() *Novel {
	c := *n
	if n.POV != nil {
		p := *n.POV
		c.POV = &p
	}
	return &c
}
