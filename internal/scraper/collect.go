package scraper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pfrederiksen/novel-search/internal/logger"
	"github.com/pfrederiksen/novel-search/internal/novel"
)

// Fetcher fetches the novels listed on one award page
type Fetcher interface {
	FetchNovels(ctx context.Context, src Source) ([]*novel.Novel, error)
}

// Collection is the combined output of scraping several sources
type Collection struct {
	Novels    []*novel.Novel
	PerSource map[string]int
	Errors    map[string]error
}

// Collect fetches every source in order. A failing source is logged and
// skipped; an error is returned only when no source could be fetched.
func Collect(ctx context.Context, f Fetcher, sources ...Source) (*Collection, error) {
	if len(sources) == 0 {
		return nil, errors.New("no sources configured")
	}

	c := &Collection{
		Novels:    make([]*novel.Novel, 0),
		PerSource: make(map[string]int),
		Errors:    make(map[string]error),
	}

	failed := 0
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("Fetching award page", logger.Fields{"award": src.Award, "url": src.URL})
		start := time.Now()

		novels, err := f.FetchNovels(ctx, src)
		logger.RecordTiming("scrape.fetch."+src.Award, time.Since(start))
		if err != nil {
			logger.Error("Fetching award page failed", logger.Fields{"award": src.Award, "url": src.URL}, err)
			logger.IncrCounter("scrape.errors")
			c.Errors[src.Award] = err
			failed++
			continue
		}

		logger.Info("Parsed award page", logger.Fields{"award": src.Award, "entries": len(novels)})
		logger.AddCounter("scrape.entries."+src.Award, int64(len(novels)))
		c.PerSource[src.Award] += len(novels)
		c.Novels = append(c.Novels, novels...)
	}

	if failed == len(sources) {
		return nil, fmt.Errorf("all %d sources failed: %w", len(sources), c.Err())
	}

	return c, nil
}

// Err joins the per-source errors in award order, or returns nil when every
// source succeeded
func (c *Collection) Err() error {
	awards := make([]string, 0, len(c.Errors))
	for award := range c.Errors {
		awards = append(awards, award)
	}
	sort.Strings(awards)

	errs := make([]error, 0, len(awards))
	for _, award := range awards {
		errs = append(errs, fmt.Errorf("%s: %w", award, c.Errors[award]))
	}
	return errors.Join(errs...)
}
