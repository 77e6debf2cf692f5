package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatekv/gatekv/cmd/batch"
	"github.com/gatekv/gatekv/cmd/kv"
	"github.com/gatekv/gatekv/cmd/util"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "gatekv",
		Short: "embeddable key-value store with a typed operation log",
		Long: fmt.Sprintf(`gatekv (v%s)

A single-node, in-process key-value store with a typed operation log
and pluggable execution handlers that gate every operation.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gatekv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gatekv v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(batch.BatchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "engine"
	RootCmd.PersistentFlags().String(key, "aspen", util.WrapString("storage engine to use (aspen)"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("log level (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
