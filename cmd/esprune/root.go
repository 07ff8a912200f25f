package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "esprune",
	Short: "Retention cleanup for time-partitioned search indices",
	Long: `Esprune is a retention cleanup job for time-partitioned search indices.

It connects to one or more Elasticsearch/OpenSearch nodes, finds indices
older than the configured retention window by parsing the date embedded in
each index name, deletes the stale ones, and reports the outcome by email.

Nodes are processed sequentially and independently: a node that cannot be
reached is reported as failed without suppressing the results of the others.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
