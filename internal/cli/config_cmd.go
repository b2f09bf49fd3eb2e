package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pfrederiksen/novel-search/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var (
		showPath      bool
		showEffective bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print a sample config file, its location or the effective settings",
		Long: `Print a commented sample config file with the default values.

  novel-search config > ~/.config/novel-search/config.toml
  novel-search config --path
  novel-search config --show`,
		Args: cobra.NoArgs,
		// a broken config file must not prevent printing a fresh sample
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch {
			case showPath:
				path := a.flagConfig
				if path == "" {
					var err error
					if path, err = config.DefaultConfigPath(); err != nil {
						return err
					}
				}
				fmt.Fprintln(out, path)
				return nil

			case showEffective:
				if err := a.setup(cmd, args); err != nil {
					return err
				}
				data, err := toml.Marshal(a.cfg)
				if err != nil {
					return fmt.Errorf("encoding config: %w", err)
				}
				_, err = out.Write(data)
				return err

			default:
				fmt.Fprint(out, config.SampleConfig())
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "Print the config file location")
	cmd.Flags().BoolVar(&showEffective, "show", false, "Print the effective configuration after files, environment and flags")
	cmd.MarkFlagsMutuallyExclusive("path", "show")

	return cmd
}
