package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
)

var debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pan-demo-data",
	Short: "Fabricate a realistic corporate file share for demos and labs",
	Long: `pan-demo-data populates a directory tree with department folders and
sparse files whose names, sizes, and ownership look like a real corporate
file share, without consuming real disk space.

The planner is deterministic under a seed; the execution engine is
parallel, resumable in spirit (partial completion is a reported outcome,
not a failure), and records an optional SQLite manifest of everything it
created.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
