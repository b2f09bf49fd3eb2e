package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/novel-search/internal/logger"
	"github.com/pfrederiksen/novel-search/internal/novel"
)

const (
	HugoURL   = "https://en.wikipedia.org/wiki/Hugo_Award_for_Best_Novel"
	NebulaURL = "https://en.wikipedia.org/wiki/Nebula_Award_for_Best_Novel"
	UserAgent = "novel-search/1.0 (github.com/pfrederiksen/novel-search)"
	Timeout   = 30 * time.Second
)

// Source is an award page to scrape
type Source struct {
	Award string `toml:"award"`
	URL   string `toml:"url"`
}

// DefaultSources returns the Hugo and Nebula Best Novel pages
func DefaultSources() []Source {
	return []Source{
		{Award: "Hugo", URL: HugoURL},
		{Award: "Nebula", URL: NebulaURL},
	}
}

// Scraper handles fetching and parsing award pages
type Scraper struct {
	client    *http.Client
	userAgent string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchNovels fetches an award page and parses the nominated novels from it
func (s *Scraper) FetchNovels(ctx context.Context, src Source) ([]*novel.Novel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseNovels(resp.Body, src.Award)
}

// ParseNovels extracts (title, award, year) entries from the wikitables in an HTML page
func ParseNovels(r io.Reader, award string) ([]*novel.Novel, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	novels := make([]*novel.Novel, 0)

	doc.Find("table.wikitable").Each(func(i int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return
		}

		headers := make([]string, 0)
		rows.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.ToLower(strings.TrimSpace(cell.Text())))
		})

		if isRetroTable(headers) {
			logger.Debug("Skipping retro table", logger.Fields{"award": award, "table": i})
			return
		}

		yearCol := yearColumn(headers)
		if yearCol < 0 {
			logger.Debug("Skipping table without year column", logger.Fields{"award": award, "table": i})
			return
		}

		novels = append(novels, parseRows(rows.Slice(1, rows.Length()), yearCol, award)...)
	})

	return novels, nil
}

// parseRows walks the body rows of one table, carrying the last seen year
// forward across rows whose year cell is row-spanned.
func parseRows(rows *goquery.Selection, yearCol int, award string) []*novel.Novel {
	novels := make([]*novel.Novel, 0)
	currentYear := 0

	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() > yearCol {
			yearText := strings.TrimSpace(cells.Eq(yearCol).Text())
			if strings.Contains(strings.ToLower(yearText), "retro") {
				return
			}
			if year := parseYear(yearText); year > 0 {
				currentYear = year
			}
		}

		if currentYear == 0 {
			return
		}

		row.Find("i").Each(func(_ int, italic *goquery.Selection) {
			if title := strings.TrimSpace(italic.Text()); title != "" {
				novels = append(novels, novel.New(title, award, currentYear))
			}
		})
	})

	return novels
}

// isRetroTable reports whether a header row has both "Year" and "Year awarded",
// which marks the Retro Hugo table.
func isRetroTable(headers []string) bool {
	hasYear, hasAwarded := false, false
	for _, h := range headers {
		switch h {
		case "year":
			hasYear = true
		case "year awarded":
			hasAwarded = true
		}
	}
	return hasYear && hasAwarded
}

// yearColumn returns the index of the first header mentioning "year" but not "awarded", or -1
func yearColumn(headers []string) int {
	for i, h := range headers {
		if strings.Contains(h, "year") && !strings.Contains(h, "awarded") {
			return i
		}
	}
	return -1
}

// parseYear reads the leading integer of a cell, e.g. "1976 (tie)" -> 1976.
// Anything unparsable yields 0.
func parseYear(text string) int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return year
}
