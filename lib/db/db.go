package db

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplAspen Implementation = "aspen"
)

// Feature represents database features as bit flags
type Feature uint64

const (
	FeatureSet          Feature = 1 << iota // Support for Set operations
	FeatureSetIfPresent                     // Support for SetIfPresent operations
	FeatureGet                              // Support for Get operations
	FeatureDelete                           // Support for Delete operations
	FeatureSnapshot                         // Support for Snapshot operations
	FeatureLoad                             // Support for Load operations
)

func (f Feature) String() string {
	switch f {
	case FeatureSet:
		return "Set"
	case FeatureSetIfPresent:
		return "SetIfPresent"
	case FeatureGet:
		return "Get"
	case FeatureDelete:
		return "Delete"
	case FeatureSnapshot:
		return "Snapshot"
	case FeatureLoad:
		return "Load"
	default:
		return "Unknown"
	}
}

// Entry is a single key-value pair as produced by Snapshot and consumed by Load.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type DatabaseInfo struct {
	Entries           int            `json:"entries"`
	DbType            Implementation `json:"db_type"`
	SupportedFeatures []Feature      `json:"supported_features"`
	Metadata          interface{}    `json:"metadata"`
}

// --------------------------------------------------------------------------
// Database Interface
// --------------------------------------------------------------------------

// KVDB defines an interface for key-value database implementations.
// It provides methods for basic operations like Set, Get, Delete, and various utility functions.
// Any implementation of this interface must manage keys in a consistent way.
// Implementations can vary in their feature support, which can be queried with SupportsFeature.
type KVDB interface {

	// --------------------------------------------------------------------------
	// Write Operations
	// --------------------------------------------------------------------------

	// Set inserts or updates an entry with the given key and value.
	// If the key already exists, the old value is overwritten.
	Set(key string, value string)

	// SetIfPresent updates the entry with the given key only if the key
	// already exists. If the key is absent, nothing is written and no entry
	// is created. The boolean return value reports whether an update happened.
	SetIfPresent(key string, value string) (ok bool)

	// Delete removes an entry with the specified key.
	// The boolean return value reports whether the key was present.
	// Deleting an absent key is a no-op.
	Delete(key string) (ok bool)

	// --------------------------------------------------------------------------
	// Query Operations
	// --------------------------------------------------------------------------

	// Get retrieves the value for an exact key.
	// The boolean return value indicates whether a value for the key was found.
	Get(key string) (value string, loaded bool)

	// Len returns the number of entries currently stored.
	Len() (n int)

	// --------------------------------------------------------------------------
	// Persistence Operations
	// --------------------------------------------------------------------------

	// Snapshot returns a point-in-time copy of all entries, ordered
	// lexicographically by key. The result is independent of the database,
	// later writes do not modify it.
	Snapshot() (entries []Entry)

	// Load replaces the database contents with the given entries.
	// If a key appears multiple times the last occurrence wins.
	Load(entries []Entry)

	// --------------------------------------------------------------------------
	// Feature Support
	// --------------------------------------------------------------------------

	// SupportsFeature checks if the database implementation supports the specified feature.
	// Returns true if the feature is supported, false otherwise.
	// Multiple features can be checked at once using bitwise OR (|) operator.
	SupportsFeature(feature Feature) (ok bool)

	// GetInfo returns information about the database.
	GetInfo() (info DatabaseInfo)

	// Close closes the database.
	Close() (err error)
}
