package main

import (
	"github.com/spf13/cobra"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/config"
)

func newUpdateCmd(cfg *config.Config, flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the tool when a newer release exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg, flags.quiet, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.orch.CheckAndUpdate(cmd.Context(), force)
			if res != nil {
				printVersionTable(cmd.OutOrStdout(), cfg.Tool.Program, res.Versions)
				printOutcome(cmd.OutOrStdout(), res.Outcome.String(), res.Summary)
			}
			return a.silenced(err)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "run the update even if the versions match")
	return cmd
}
