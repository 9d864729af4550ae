package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "testconsole",
	Short: "Replay captured console output from test workers.",
	Long: `testconsole replays console calls captured from test workers
(log, warn, error, group, count, time and friends) with group
indentation, labelled counters and timers, and a pluggable line format.`,
	SilenceUsage: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}
