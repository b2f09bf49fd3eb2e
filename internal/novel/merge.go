package novel

import (
	"sort"
)

// MergeResult contains the merged collection and what the merge changed
type MergeResult struct {
	Novels    []*Novel
	Added     int
	Updated   int
	Unchanged int
}

// Dedupe collapses a batch by key. The first occurrence keeps its position and
// its title is rewritten in normalized form; later duplicates union their
// award into it.
func Dedupe(novels []*Novel) []*Novel {
	byKey := make(map[Key]*Novel, len(novels))
	unique := make([]*Novel, 0, len(novels))

	for _, n := range novels {
		key := n.Key()
		existing, ok := byKey[key]
		if !ok {
			c := n.clone()
			c.Title = key.Title
			byKey[key] = c
			unique = append(unique, c)
			continue
		}
		existing.Award = UnionAwards(existing.Award, n.Award)
		if n.POV != nil {
			p := *n.POV
			existing.POV = &p
		}
		existing.Read = existing.Read || n.Read
	}

	return unique
}

// Merge folds incoming records into an existing collection.
//
// Existing records are never dropped. For matching keys the awards are
// unioned, an existing point of view is never replaced, and read status is
// sticky. The result is in canonical (year, title) order and shares no
// pointers with its inputs.
func Merge(existing, incoming []*Novel) *MergeResult {
	result := &MergeResult{}

	byKey := make(map[Key]*Novel, len(existing)+len(incoming))
	merged := make([]*Novel, 0, len(existing)+len(incoming))
	touched := make(map[Key]bool)

	for _, n := range Dedupe(existing) {
		byKey[n.Key()] = n
		merged = append(merged, n)
	}

	for _, n := range Dedupe(incoming) {
		key := n.Key()
		current, ok := byKey[key]
		if !ok {
			byKey[key] = n
			merged = append(merged, n)
			result.Added++
			continue
		}
		if mergeInto(current, n) {
			touched[key] = true
		}
	}

	result.Updated = len(touched)
	result.Unchanged = len(merged) - result.Added - result.Updated

	SortCanonical(merged)
	result.Novels = merged
	return result
}

// mergeInto applies incoming onto current and reports whether anything changed
func mergeInto(current, incoming *Novel) bool {
	changed := false

	if award := UnionAwards(current.Award, incoming.Award); award != current.Award {
		current.Award = award
		changed = true
	}

	if current.POV == nil && incoming.POV != nil {
		p := *incoming.POV
		current.POV = &p
		changed = true
	}

	if incoming.Read && !current.Read {
		current.Read = true
		changed = true
	}

	return changed
}

// FilterFromYear keeps novels from the given year onwards. A year <= 0 keeps everything.
func FilterFromYear(novels []*Novel, year int) []*Novel {
	if year <= 0 {
		return novels
	}
	filtered := make([]*Novel, 0, len(novels))
	for _, n := range novels {
		if n.Year >= year {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// SortCanonical sorts ascending by year, then title
func SortCanonical(novels []*Novel) {
	sort.SliceStable(novels, func(i, j int) bool {
		if novels[i].Year != novels[j].Year {
			return novels[i].Year < novels[j].Year
		}
		return novels[i].Title < novels[j].Title
	})
}

// SortRecentFirst sorts descending by year; titles within a year stay ascending
func SortRecentFirst(novels []*Novel) {
	sort.SliceStable(novels, func(i, j int) bool {
		if novels[i].Year != novels[j].Year {
			return novels[i].Year > novels[j].Year
		}
		return novels[i].Title < novels[j].Title
	})
}

// Pending returns the unannotated novels, most recent first.
// The returned pointers alias the input so annotations land in the collection.
func Pending(novels []*Novel) []*Novel {
	pending := make([]*Novel, 0)
	for _, n := range novels {
		if !n.Annotated() {
			pending = append(pending, n)
		}
	}
	SortRecentFirst(pending)
	return pending
}

// NextUnannotated returns the most recent novel without a point of view, or nil
func NextUnannotated(novels []*Novel) *Novel {
	pending := Pending(novels)
	if len(pending) == 0 {
		return nil
	}
	return pending[0]
}
