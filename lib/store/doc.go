// Package store provides a high-level interface for key-value storage operations
// with presence-checked mutations and unified error handling. It serves as an
// abstraction layer over the lower-level db.KVDB implementations, adding
// standardized error reporting and snapshot access.
//
// The package focuses on:
//   - A unified interface (IStore) for key-value operations across different backends
//   - Pluggable storage backend architecture through the DBFactory pattern
//   - Typed return codes that distinguish misses from real failures
//
// Key Components:
//
//   - IStore Interface: The core abstraction defining operations for interacting with
//     a key-value store. All implementations share this common interface, allowing
//     applications to switch between different storage backends without code changes.
//     The interface methods return custom Error types that provide detailed information
//     about operation results.
//
//   - Error System: A structured error reporting mechanism using typed error codes
//     and descriptive messages. This system allows applications to make informed
//     decisions based on specific error conditions rather than generic errors.
//     The CodeOf and IsNotFound helpers extract codes from wrapped errors.
//
//   - DBFactory: A function type that abstracts the creation of underlying db.KVDB
//     instances, providing dependency injection and flexible configuration of
//     storage backends.
//
// Operation Semantics:
//
//	The four mutating and reading operations follow fixed presence rules:
//
//	- Insert is an unconditional upsert and cannot fail on key state.
//	- Retrieve reports a miss through its boolean result, not through an error.
//	- Delete requires the key to exist and fails with RetCNotFound otherwise.
//	- Update requires the key to exist, fails with RetCNotFound otherwise and
//	  never creates the key as a side effect.
//
// Implementations:
//
//	The package includes one implementation of the IStore interface:
//
//	- Memory Store (memstore): A single-node implementation that directly
//	  utilizes a db.KVDB instance. Data lives entirely in memory, snapshots
//	  must be exported explicitly to survive restarts. Available in the
//	  "github.com/gatekv/gatekv/lib/store/memstore" package.
//
// This interface-driven approach allows applications to:
//   - Swap the storage engine without touching application logic
//   - Handle errors in a consistent and type-safe manner across implementations
//   - Abstract storage implementation details from application logic
package store
