package cli

import (
	"fmt"

	"github.com/pfrederiksen/novel-search/internal/annotate"
	"github.com/pfrederiksen/novel-search/internal/logger"
	"github.com/spf13/cobra"
)

func newProcessCmd(a *app) *cobra.Command {
	var noBrowser bool

	cmd := &cobra.Command{
		Use:     "process",
		Aliases: []string{"annotate"},
		Short:   "Annotate unprocessed novels with their point of view",
		Long: `Walk the novels without a point of view, most recent first. For each one a
search page is opened and you are asked for the point of view:

  1, 2 or 3   first, second or third person
  add 'r'     mark the novel as read (e.g. 1r or r1)
  s           skip for this session
  quit/exit   stop; progress is saved after every novel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProcess(cmd, noBrowser)
		},
	}

	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Print search URLs instead of opening a browser")

	return cmd
}

func (a *app) runProcess(cmd *cobra.Command, noBrowser bool) error {
	out := cmd.OutOrStdout()

	store, release, err := a.openStorage(true)
	if err != nil {
		return err
	}
	defer release()

	novels, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading novels: %w", err)
	}
	if len(novels) == 0 {
		fmt.Fprintln(out, "No award novels found. Run 'scrape' first.")
		return nil
	}

	var opener annotate.Opener
	if noBrowser {
		opener = annotate.NewPrintOpener(out)
	} else {
		opener = annotate.NewBrowserOpener()
	}

	annotator := annotate.New(cmd.InOrStdin(), out, opener, store.Save, a.cfg.SearchURL)
	annotator.SetColor(shouldColorize(out))

	result, err := annotator.Run(cmd.Context(), novels)
	if result != nil {
		logger.Info("Annotation session finished", logger.Fields{
			"annotated": result.Annotated,
			"skipped":   result.Skipped,
			"quit":      result.Quit,
		})
	}
	if err != nil {
		return fmt.Errorf("annotating: %w", err)
	}
	return nil
}
