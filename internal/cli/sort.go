package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/novel-search/internal/novel"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByYear  SortOrder = "year"
	SortByTitle SortOrder = "title"
	SortByAward SortOrder = "award"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByYear, SortByTitle, SortByAward:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'year', 'title' or 'award')", s)
	}
}

// sortNovels sorts novels in place; desc reverses the primary key only
func sortNovels(novels []*novel.Novel, order SortOrder, desc bool) {
	switch order {
	case SortByYear:
		sort.SliceStable(novels, func(i, j int) bool {
			if novels[i].Year != novels[j].Year {
				return (novels[i].Year < novels[j].Year) != desc
			}
			return compareTitles(novels[i], novels[j])
		})
	case SortByTitle:
		sort.SliceStable(novels, func(i, j int) bool {
			ti, tj := strings.ToLower(novels[i].Title), strings.ToLower(novels[j].Title)
			if ti != tj {
				return (ti < tj) != desc
			}
			return novels[i].Year < novels[j].Year
		})
	case SortByAward:
		sort.SliceStable(novels, func(i, j int) bool {
			if novels[i].Award != novels[j].Award {
				return (novels[i].Award < novels[j].Award) != desc
			}
			if novels[i].Year != novels[j].Year {
				return novels[i].Year < novels[j].Year
			}
			return compareTitles(novels[i], novels[j])
		})
	}
}

// compareTitles orders case-insensitively, falling back to the raw title
func compareTitles(i, j *novel.Novel) bool {
	ti, tj := strings.ToLower(i.Title), strings.ToLower(j.Title)
	if ti != tj {
		return ti < tj
	}
	return i.Title < j.Title
}
