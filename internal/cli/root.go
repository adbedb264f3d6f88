// Package cli implements the shelve command line interface.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mydehq/shelve/internal/config"
	"github.com/mydehq/shelve/internal/ui"
)

var (
	logger *log.Logger

	flagConfig  string
	flagVerbose bool
	flagDryRun  bool
)

// RootCmd is the top-level shelve command.
var RootCmd = &cobra.Command{
	Use:   "shelve",
	Short: "Sort loose files into fitting directories",
	Long: `Shelve assigns loose files to the most plausible existing directory by
comparing filenames against directory names, then moves them after
optional interactive confirmation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = ui.NewLogger(os.Stderr, flagVerbose)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultFileName, "configuration file")
	RootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "report planned moves without touching anything")
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if logger == nil {
			logger = ui.NewLogger(os.Stderr, false)
		}
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// loadConfig reads the configured map file. A missing file is only an
// error when the user named one explicitly; otherwise the defaults
// apply and flags fill in the rest.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(flagConfig); err != nil {
		if os.IsNotExist(err) && !cmd.Flags().Changed("config") {
			return config.Default(), nil
		}
		return nil, err
	}
	return config.Load(flagConfig)
}
