package kv

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatekv/gatekv/cmd/util"
	"github.com/gatekv/gatekv/lib/snapshot"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if err := localStore.Insert(key, value); err != nil {
				return err
			}
			if err := util.PersistStore(localStore); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, found, err := localStore.Retrieve(key)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%v, value=%s\n", key, found, value)
			return nil
		},
	}
	updateCmd = &cobra.Command{
		Use:   "update [key] [value]",
		Short: "Overwrites the value of an existing key",
		Long:  "Overwrites the value of an existing key. Unlike set, update fails if the key does not exist and never creates it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if err := localStore.Update(key, value); err != nil {
				return err
			}
			if err := util.PersistStore(localStore); err != nil {
				return err
			}
			fmt.Println("update successfully")
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := localStore.Delete(key); err != nil {
				return err
			}
			if err := util.PersistStore(localStore); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	lenCmd = &cobra.Command{
		Use:   "len",
		Short: "Prints the number of entries in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := localStore.GetDBInfo()
			if err != nil {
				return err
			}
			fmt.Println(info.Entries)
			return nil
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints metadata about the underlying database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := localStore.GetDBInfo()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
	exportCmd = &cobra.Command{
		Use:   "export [file]",
		Short: "Exports the store as a text snapshot",
		Long:  "Exports the store in the line-oriented key:value format, to the given file or to stdout when no file is specified.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := localStore.Snapshot()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return snapshot.WriteAll(os.Stdout, entries)
			}
			if err := snapshot.WriteFile(args[0], entries); err != nil {
				return err
			}
			fmt.Printf("exported %d entries to %s\n", len(entries), args[0])
			return nil
		},
	}
	importCmd = &cobra.Command{
		Use:   "import [file]",
		Short: "Replaces the store contents with a text snapshot",
		Long:  "Replaces the store contents with the entries of the given snapshot file. Duplicate keys in the file collapse last-write-wins.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := localStore.Load(entries); err != nil {
				return err
			}
			if err := util.PersistStore(localStore); err != nil {
				return err
			}
			fmt.Printf("imported %d entries from %s\n", len(entries), args[0])
			return nil
		},
	}
)
