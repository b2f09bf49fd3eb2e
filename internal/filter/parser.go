package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var yearRangePattern = regexp.MustCompile(`^(\d{4})?\s*(-)?\s*(\d{4})?$`)

// ParseYearRange parses an inclusive year range.
//
// Supported formats:
//   - "1990-2000" - both bounds
//   - "2005"      - a single year
//   - "1990-"     - from a year onwards
//   - "-2000"     - up to a year
//
// Returns (from, to, error); an open bound is 0.
func ParseYearRange(input string) (int, int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, 0, fmt.Errorf("year range cannot be empty")
	}

	matches := yearRangePattern.FindStringSubmatch(input)
	if matches == nil || (matches[1] == "" && matches[3] == "") {
		return 0, 0, fmt.Errorf("invalid year range %q. Use '1990-2000', '2005', '1990-' or '-2000'", input)
	}

	from, _ := strconv.Atoi(matches[1])
	to, _ := strconv.Atoi(matches[3])

	// no dash: a single year
	if matches[2] == "" {
		if matches[1] == "" || matches[3] != "" {
			return 0, 0, fmt.Errorf("invalid year range %q", input)
		}
		return from, from, nil
	}

	if from > 0 && to > 0 && from > to {
		return 0, 0, fmt.Errorf("start year must not be after end year")
	}

	return from, to, nil
}
