package cli

import (
	"fmt"

	"github.com/pfrederiksen/novel-search/internal/novel"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the collection by award and point of view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format, FormatText, FormatJSON)
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

			return WriteStats(cmd.OutOrStdout(), novel.Summarize(novels), f)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(FormatText), "Output format: text, json")

	return cmd
}
