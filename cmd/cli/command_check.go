package main

import (
	"github.com/spf13/cobra"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/config"
)

func newCheckCmd(cfg *config.Config, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show the installed and the latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg, true, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			pair, err := a.orch.Versions(cmd.Context())
			printVersionTable(cmd.OutOrStdout(), cfg.Tool.Program, pair)
			return a.silenced(err)
		},
	}
	return cmd
}
