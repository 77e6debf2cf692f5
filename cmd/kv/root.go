package kv

import (
	"github.com/spf13/cobra"

	"github.com/gatekv/gatekv/cmd/util"
	"github.com/gatekv/gatekv/lib/store"
)

var (
	localStore store.IStore

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value store operations",
		PersistentPreRunE: setupStore,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add flags
	key := "snapshot"
	KeyValueCommands.PersistentFlags().String(key, "gatekv.snap", util.WrapString("Snapshot file backing the store (empty for a purely in-memory store)"))

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(updateCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(lenCmd)
	KeyValueCommands.AddCommand(infoCmd)
	KeyValueCommands.AddCommand(exportCmd)
	KeyValueCommands.AddCommand(importCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupStore hydrates the local store from the snapshot file
func setupStore(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	if err := util.SetupLogging(); err != nil {
		return err
	}

	var err error
	localStore, err = util.OpenStore()
	return err
}
