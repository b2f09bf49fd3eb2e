package cli

import (
	"fmt"

	"github.com/pfrederiksen/novel-search/internal/filter"
	"github.com/spf13/cobra"
)

type listOptions struct {
	format string
	awards []string
	years  string
	povs   []string
	read   bool
	unread bool
	title  string
	sortBy string
	desc   bool
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collected novels",
		Long: `List the novels in the data file, optionally filtered by award, year range,
point of view, read status or title.

Examples:
  novel-search list --award Hugo --years 1990-1999
  novel-search list --pov none --sort year --desc
  novel-search list --read --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", string(FormatText), "Output format: text, json, table")
	cmd.Flags().StringSliceVar(&opts.awards, "award", nil, "Only novels nominated for this award (repeatable)")
	cmd.Flags().StringVar(&opts.years, "years", "", "Year range, e.g. 1990-2000, 2005, 1990- or -2000")
	cmd.Flags().StringSliceVar(&opts.povs, "pov", nil, "Point of view: first, second, third or none (repeatable)")
	cmd.Flags().BoolVar(&opts.read, "read", false, "Only novels marked as read")
	cmd.Flags().BoolVar(&opts.unread, "unread", false, "Only novels not marked as read")
	cmd.Flags().StringVar(&opts.title, "title", "", "Case-insensitive title substring")
	cmd.Flags().StringVar(&opts.sortBy, "sort", string(SortByYear), "Sort by: year, title, award")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort in descending order")
	cmd.MarkFlagsMutuallyExclusive("read", "unread")

	return cmd
}

func (o *listOptions) buildFilter() (*filter.Filter, error) {
	f := filter.NewFilter()
	f.Awards = append(f.Awards, o.awards...)
	f.Title = o.title

	if o.years != "" {
		from, to, err := filter.ParseYearRange(o.years)
		if err != nil {
			return nil, err
		}
		f.YearFrom, f.YearTo = from, to
	}

	if err := f.SetPOVs(o.povs); err != nil {
		return nil, err
	}

	switch {
	case o.read:
		read := true
		f.Read = &read
	case o.unread:
		read := false
		f.Read = &read
	}

	return f, nil
}

func (a *app) runList(cmd *cobra.Command, opts *listOptions) error {
	format, err := parseFormat(opts.format, FormatText, FormatJSON, FormatTable)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(opts.sortBy)
	if err != nil {
		return err
	}
	f, err := opts.buildFilter()
	if err != nil {
		return err
	}

	store, _, err := a.openStorage(false)
	if err != nil {
		return err
	}
	novels, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading novels: %w", err)
	}

	selected := f.Apply(novels)
	sortNovels(selected, order, opts.desc)

	out := cmd.OutOrStdout()
	return WriteList(out, &ListResult{
		Filter: f.Describe(),
		Count:  len(selected),
		Novels: selected,
	}, format, shouldColorize(out))
}
