package novel

// Stats summarizes a collection
type Stats struct {
	Total     int            `json:"total"`
	Annotated int            `json:"annotated"`
	Pending   int            `json:"pending"`
	Read      int            `json:"read"`
	ByAward   map[string]int `json:"by_award"`
	ByPOV     map[string]int `json:"by_pov"`
	MinYear   int            `json:"min_year,omitempty"`
	MaxYear   int            `json:"max_year,omitempty"`
}

// Summarize counts novels per award, per point of view and by status.
// A novel nominated for two awards counts once under each.
func Summarize(novels []*Novel) *Stats {
	stats := &Stats{
		ByAward: make(map[string]int),
		ByPOV:   make(map[string]int),
	}

	for _, n := range novels {
		stats.Total++
		if n.Annotated() {
			stats.Annotated++
			stats.ByPOV[n.POVString()]++
		} else {
			stats.Pending++
		}
		if n.Read {
			stats.Read++
		}
		for _, a := range n.Awards() {
			stats.ByAward[a]++
		}
		if stats.MinYear == 0 || n.Year < stats.MinYear {
			stats.MinYear = n.Year
		}
		if n.Year > stats.MaxYear {
			stats.MaxYear = n.Year
		}
	}

	return stats
}
