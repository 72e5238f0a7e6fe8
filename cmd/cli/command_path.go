package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/config"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/envpath"
)

func newPathCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print PATH merged from the process, registry, machine and user scopes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := envpath.NewMerger(nil, envpath.WithSeparator(cfg.PathSeparator))
			sep := cfg.PathSeparator
			if sep == "" {
				sep = string(os.PathListSeparator)
			}
			for _, entry := range envpath.Split(m.ComputeMergedPath(), sep) {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}
	return cmd
}
