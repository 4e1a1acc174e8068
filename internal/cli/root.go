package cli

import (
	"github.com/jrsteele09/go-lab-site/internal/config"
	"github.com/jrsteele09/go-lab-site/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
)

// NewRootCmd creates the root cobra command for labctl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "labctl",
		Short: "Maintenance tasks for the lab site",
		Long:  "labctl migrates legacy content into the site database and prepares admin credentials.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logging.SetupWithWriter(flagLogLevel, flagLogFormat, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.GetEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "Log format (console, json)")

	root.AddCommand(
		newMigrateCmd(),
		newHashPasswordCmd(),
	)

	return root
}
