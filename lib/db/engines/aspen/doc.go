// Package aspen implements an in-memory key-value database (KVDB) backed by a
// concurrent hash map. It provides a complete implementation of the db.KVDB
// interface with a focus on thread safety and simple, predictable semantics.
//
// The package focuses on:
//   - Optimized concurrent access through the lock-free xsync.MapOf map
//   - Atomic conditional updates for the SetIfPresent operation
//   - Deterministic snapshots ordered lexicographically by key
//   - Full feature coverage of the db.KVDB interface
//
// Key Components:
//
//   - aspenImpl: The central database structure implementing db.KVDB. All
//     key-value state lives in a single xsync.MapOf[string, string], which
//     shards internally and therefore needs no additional partitioning layer.
//
//   - DBOptions: Initialization options. Currently only a size hint used to
//     pre-size the underlying map and avoid growth pauses for workloads with a
//     known working set.
//
// Internal Mechanisms:
//
//   - Conditional Writes: SetIfPresent is built on the map's Compute method.
//     The compute callback observes whether the key is present and either
//     overwrites the value or instructs the map to keep the key absent. This
//     makes update-only semantics atomic without external locking.
//
//   - Snapshots: Snapshot ranges over the live map, copies all entries and
//     sorts them by key. A snapshot taken concurrently with writes is fuzzy:
//     each racing write is either fully contained or fully absent, the
//     snapshot never exposes partial state.
//
// Thread Safety:
//
//	All read and write operations are safe for concurrent use. Load is the
//	exception: it replaces the full database state and must not race with
//	other operations.
//
// Usage Example:
//
//	database := aspen.NewAspenDB(nil)
//	defer database.Close()
//
//	database.Set("name", "test_config")
//	value, ok := database.Get("name")
package aspen
