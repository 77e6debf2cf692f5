// Package cmd implements the command-line interface for the gatekv key-value
// store. It provides a hierarchical command structure for operating on a
// snapshot-backed local store and for running validated operation batches.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value store operations (get, set, update, delete,
//     snapshot export/import, perf)
//   - batch: Command for running a batch of operations through the dispatcher
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See gatekv -help for a list of all commands.
package cmd
