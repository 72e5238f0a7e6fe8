package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/config"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/logging"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFile    string
	quiet      bool
}

func (f *rootFlags) bind(pf *pflag.FlagSet) {
	pf.StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&f.logFile, "log-file", "console", `log file path, or "console" for stderr`)
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "do not stream process output")
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "sau",
		Short:         "Spicetify auto-updater and installer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				loaded.Log.Level = flags.logLevel
			}
			if cmd.Flags().Changed("log-file") {
				loaded.Log.File = flags.logFile
			}
			if err := logging.InitLog(loaded.Log.Level, loaded.Log.File); err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}
	flags.bind(root.PersistentFlags())

	root.AddCommand(newCheckCmd(cfg, flags))
	root.AddCommand(newInstallCmd(cfg, flags))
	root.AddCommand(newUpdateCmd(cfg, flags))
	root.AddCommand(newPathCmd(cfg))
	root.AddCommand(newVersionCmd())

	return root
}
