// Package db provides a standardized interface for key-value database implementations.
// It defines a KVDB interface that allows for consistent interaction with various
// database backends while abstracting implementation details.
//
// The package focuses on:
//   - A unified interface for key-value operations
//   - Feature discovery through capability flags
//   - Standardized snapshot and load operations
//   - Metadata reporting
//
// Key Components:
//
//   - KVDB Interface: The core interface that all database implementations must satisfy.
//     It provides methods for basic operations (Set, Get, Delete), conditional
//     operations (SetIfPresent), snapshot operations (Snapshot, Load) and
//     metadata retrieval (GetInfo).
//
//   - Feature Flags: The Feature type defines capability flags that implementations
//     can advertise through the SupportsFeature method. This allows clients to
//     discover supported operations at runtime.
//
//   - Implementation Identifiers: The Implementation type provides string constants
//     for different database backends (currently "aspen").
//
//   - Database Information: The DatabaseInfo structure provides standardized
//     reporting on database state, including the entry count, implementation type,
//     and implementation-specific metadata.
//
// This interface-driven approach allows applications to:
//   - Swap database implementations without code changes
//   - Gracefully handle operations not supported by specific implementations
//   - Maintain consistent behavior across different storage backends
//
// Note on Conditional Writes:
//   - Set is an unconditional upsert: it creates the key if absent and overwrites
//     it if present.
//   - SetIfPresent is the update primitive: it only ever overwrites existing keys
//     and must never create a new one. Callers use its boolean result to
//     distinguish a performed update from a miss.
//
// Note on Snapshots:
//   - Snapshot returns an independent copy of the data, ordered lexicographically
//     by key, so that two databases holding the same mapping produce identical
//     snapshots regardless of insertion order.
//   - Load replaces the full database state. When the given entries contain
//     duplicate keys, the last occurrence wins. This makes replaying a snapshot
//     that was appended to (rather than rewritten) deterministic.
//
// Related Packages:
//
// The engines/aspen package (github.com/gatekv/gatekv/lib/db/engines/aspen) provides
// an implementation of the KVDB interface backed by a concurrent hash map. It is
// optimized for mixed read/write workloads with many goroutines and implements all
// features defined by this package.
//
// The testing package (github.com/gatekv/gatekv/lib/db/testing) provides
// standardized tests and benchmarks for database implementations that satisfy the db.KVDB interface.
//   - RunKVDBTests: Runs a standardized test suite to validate implementations
//   - RunKVDBBenchmarks: Provides performance benchmarks for comparing implementations
package db
