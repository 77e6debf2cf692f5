// Package memstore implements a local, in-memory, single-node key-value store based on the
// store.IStore interface. It provides a thin wrapper around any db.KVDB
// implementation. Data is stored entirely in memory and is not persisted
// between process restarts unless a snapshot is exported explicitly.
//
// Key Features:
//   - Pure in-memory storage without implicit persistence
//   - Direct integration with db.KVDB implementations
//   - Presence-checked Delete and Update operations with typed errors
//   - Feature detection to handle unsupported operations gracefully
//   - Thread-safe operations for concurrent access
//
// Implementation Details:
//
//   - Presence Semantics: Insert is an unconditional upsert. Delete and Update
//     translate the boolean results of the underlying engine into
//     store.RetCNotFound errors, so a failed mutation is always observable and
//     never changes the stored data. Update relies on the engine's
//     SetIfPresent primitive and therefore never creates a key.
//
//   - Feature Detection: Before executing operations, the store checks if the underlying
//     db.KVDB implementation supports the requested feature through the SupportsFeature
//     method. Unsupported operations return appropriate error codes rather than failing
//     silently or producing undefined behavior.
//
//   - Composition Architecture: The store follows a composition pattern where the
//     store.DBFactory factory function injects the underlying db.KVDB implementation.
//     This allows the store to work with any db.KVDB-compatible engine without modification.
//
// Thread Safety:
//
//	All operations in the memory store are thread-safe as long as the underlying
//	db.KVDB implementation provides its own thread safety guarantees for the
//	actual storage operations. The wrapper itself holds no mutable state.
//
// Usage Example:
//
//	// Create a store with an aspen database backend
//	factory := func() db.KVDB { return aspen.NewAspenDB(aspen.DefaultOptions()) }
//	st := memstore.NewMemStore(factory)
//
//	// Store a value
//	err := st.Insert("language", "Rust")
//
//	// Retrieve the value
//	value, found, err := st.Retrieve("language")
//
// Suitable Use Cases:
//
//	The memory store is ideal for:
//	- Ephemeral data that doesn't need to survive process restarts
//	- Single-node applications where distributed consensus is not required
//	- Testing and development environments
//	- Runtime caching and session storage within a single process
package memstore
