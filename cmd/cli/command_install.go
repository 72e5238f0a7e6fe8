package main

import (
	"fmt"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/config"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/pipeline"
)

func newInstallCmd(cfg *config.Config, flags *rootFlags) *cobra.Command {
	var openAfter bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the tool and its plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg, flags.quiet, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			probe, err := a.orch.Probe(cmd.Context())
			if err != nil {
				return a.silenced(err)
			}
			if probe.Installed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already installed (%s)\n", cfg.Tool.Program, probe.Version)
				return nil
			}

			res, err := a.orch.Install(cmd.Context())
			if res != nil {
				printOutcome(cmd.OutOrStdout(), res.Outcome.String(), res.Summary)
				// without --quiet the transcript already showed the warning
				if w := res.Warning(); w != nil && flags.quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "Warning: %v\n", w)
				}
			}
			if err != nil {
				return a.silenced(err)
			}

			if openAfter && res.Outcome != pipeline.InstallFailed {
				if err := open.Run(cfg.OpenURI); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open %s: %v\n", cfg.OpenURI, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&openAfter, "open", false, "open the target application after a successful install")
	return cmd
}
