package cli

import (
	"fmt"

	"github.com/pfrederiksen/novel-search/internal/logger"
	"github.com/pfrederiksen/novel-search/internal/novel"
	"github.com/pfrederiksen/novel-search/internal/scraper"
	"github.com/spf13/cobra"
)

type scrapeOptions struct {
	after  int
	dryRun bool
}

func newScrapeCmd(a *app) *cobra.Command {
	opts := &scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape award pages and merge the nominees into the data file",
		Long: `Scrape the configured award pages (Hugo and Nebula Best Novel by default)
and merge the nominees into the data file. Novels are keyed by title and
year; awards of matching novels are combined and existing annotations are
kept. Only newly scraped novels from --after onwards are added.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("after") {
				opts.after = a.cfg.After
			}
			return a.runScrape(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.after, "after", 0, "Only add novels from this award year onwards (default from config, 1990)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would change without writing the data file")

	return cmd
}

func (a *app) runScrape(cmd *cobra.Command, opts *scrapeOptions) error {
	out := cmd.OutOrStdout()

	store, release, err := a.openStorage(!opts.dryRun)
	if err != nil {
		return err
	}
	defer release()

	sc := scraper.New(
		scraper.WithTimeout(a.cfg.Timeout()),
		scraper.WithUserAgent(a.cfg.UserAgent),
	)

	collection, err := scraper.Collect(cmd.Context(), sc, a.cfg.Sources...)
	if err != nil {
		return fmt.Errorf("scraping: %w", err)
	}

	for _, src := range a.cfg.Sources {
		if srcErr, failed := collection.Errors[src.Award]; failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipping %s: %v\n", src.Award, srcErr)
			continue
		}
		fmt.Fprintf(out, "Found %d %s entries.\n", collection.PerSource[src.Award], src.Award)
	}

	incoming := novel.FilterFromYear(collection.Novels, opts.after)
	logger.Debug("Filtered scraped novels", logger.Fields{
		"after":    opts.after,
		"scraped":  len(collection.Novels),
		"incoming": len(incoming),
	})

	existing, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading novels: %w", err)
	}

	result := novel.Merge(existing, incoming)
	logger.SetGauge("collection.size", float64(len(result.Novels)))
	logger.AddCounter("merge.added", int64(result.Added))
	logger.AddCounter("merge.updated", int64(result.Updated))

	if opts.dryRun {
		fmt.Fprintf(out, "Dry run: would save %d unique novels (%d added, %d updated) to %s.\n",
			len(result.Novels), result.Added, result.Updated, store.Path())
	} else {
		if err := store.Save(result.Novels); err != nil {
			return fmt.Errorf("saving novels: %w", err)
		}
		fmt.Fprintf(out, "Saved %d unique novels (%d added, %d updated) to %s.\n",
			len(result.Novels), result.Added, result.Updated, store.Path())
	}

	if a.flagVerbose {
		logger.DefaultMetrics().WriteSummary(cmd.ErrOrStderr())
	}

	return nil
}
