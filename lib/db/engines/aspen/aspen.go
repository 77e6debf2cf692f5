package aspen

import (
	"sort"

	"github.com/gatekv/gatekv/lib/db"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	defaultSizeHint = 1 << 10 // Default pre-sizing of the underlying map
	infoSampleSize  = 1000    // Max number of entries sampled by GetInfo
)

// --------------------------------------------------------------------------
// Core Aspen database structure
// --------------------------------------------------------------------------

// aspenImpl implements the db.KVDB interface on top of a concurrent hash map
type aspenImpl struct {
	data *xsync.MapOf[string, string]
}

// DBOptions configures the aspenImpl behavior during initialization
type DBOptions struct {
	SizeHint int // Expected number of entries (0 = library default)
}

// DefaultOptions returns the default aspenImpl options
func DefaultOptions() *DBOptions {
	return &DBOptions{
		SizeHint: defaultSizeHint,
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewAspenDB creates a new AspenDB instance with the specified options (optional)
//
// Thread-safety: This function is not thread-safe and should only be called once
// during initialization.
func NewAspenDB(opts *DBOptions) db.KVDB {

	// Generate default options if not provided
	if opts == nil {
		opts = DefaultOptions()
	}

	var mapOpts []func(*xsync.MapConfig)
	if opts.SizeHint > 0 {
		mapOpts = append(mapOpts, xsync.WithPresize(opts.SizeHint))
	}

	return &aspenImpl{
		data: xsync.NewMapOf[string, string](mapOpts...),
	}
}

// --------------------------------------------------------------------------
// Core KVDB Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Set inserts or updates an entry with the given key and value.
// If the key already exists, the old value is overwritten.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (aspen *aspenImpl) Set(key string, value string) {
	aspen.data.Store(key, value)
}

// SetIfPresent updates the entry with the given key only if it already exists.
// Absent keys stay absent, no entry is created.
//
// Thread-safety: This method uses an atomic compute to ensure thread-safety.
func (aspen *aspenImpl) SetIfPresent(key string, value string) bool {
	var updated bool
	aspen.data.Compute(key, func(oldValue string, loaded bool) (string, bool) {
		if !loaded {
			return oldValue, true // set delete to true because else the value will be created
		}
		updated = true
		return value, false
	})
	return updated
}

// Delete removes an entry with the specified key.
// The boolean reports whether the key was present.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (aspen *aspenImpl) Delete(key string) bool {
	_, loaded := aspen.data.LoadAndDelete(key)
	return loaded
}

// --------------------------------------------------------------------------
// Core KVDB Interface Methods - Read Operations
// --------------------------------------------------------------------------

// Get retrieves a value for a key.
// The boolean indicates whether a value for the key was found.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (aspen *aspenImpl) Get(key string) (string, bool) {
	return aspen.data.Load(key)
}

// Len returns the number of entries currently stored.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (aspen *aspenImpl) Len() int {
	return aspen.data.Size()
}

// --------------------------------------------------------------------------
// Persistence Operations
// --------------------------------------------------------------------------

// Snapshot returns a copy of all entries ordered lexicographically by key.
// Two databases holding the same mapping produce identical snapshots
// regardless of insertion order.
//
// Thread-safety: This method allows concurrent operations with all other
// methods. Writes racing with Snapshot may or may not be included.
func (aspen *aspenImpl) Snapshot() []db.Entry {
	entries := make([]db.Entry, 0, aspen.data.Size())
	aspen.data.Range(func(key string, value string) bool {
		entries = append(entries, db.Entry{Key: key, Value: value})
		return true
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Load replaces the database contents with the given entries.
// For duplicate keys the last occurrence wins.
//
// Thread-safety: This function is not thread-safe and should not be called
// concurrently with other operations.
func (aspen *aspenImpl) Load(entries []db.Entry) {
	aspen.data.Clear()
	for _, entry := range entries {
		aspen.data.Store(entry.Key, entry.Value)
	}
}

// --------------------------------------------------------------------------
// KVDB Interface Implementation - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo returns statistics about the database
func (aspen *aspenImpl) GetInfo() db.DatabaseInfo {

	// sample a bounded number of entries for value size stats
	var (
		sampled   int
		valueSize int
	)
	aspen.data.Range(func(_ string, value string) bool {
		valueSize += len(value)
		sampled++
		return sampled < infoSampleSize
	})

	avgValueSize := 0
	if sampled > 0 {
		avgValueSize = valueSize / sampled
	}

	// Metadata for this specific database implementation
	meta := &struct {
		AvgValueSize int    `json:"avg_value_size"`
		SampledKeys  int    `json:"sampled_keys"`
		Info         string `json:"info"`
	}{
		AvgValueSize: avgValueSize,
		SampledKeys:  sampled,
		Info:         "AvgValueSize is estimated from a bounded sample and may vary depending on the database state.",
	}

	// features
	supportedFeatures := []db.Feature{
		db.FeatureSet, db.FeatureSetIfPresent,
		db.FeatureGet, db.FeatureDelete,
		db.FeatureSnapshot, db.FeatureLoad,
	}

	return db.DatabaseInfo{
		Entries:           aspen.data.Size(),
		DbType:            db.ImplAspen,
		SupportedFeatures: supportedFeatures,
		Metadata:          meta,
	}
}

// SupportsFeature checks if this implementation supports a specific KVDB feature
func (aspen *aspenImpl) SupportsFeature(feature db.Feature) bool {
	supportedFeatures := db.FeatureSet |
		db.FeatureSetIfPresent |
		db.FeatureGet |
		db.FeatureDelete |
		db.FeatureSnapshot |
		db.FeatureLoad
	return supportedFeatures&feature == feature
}

// Close releases the database. The aspen engine holds no background
// resources, Close only exists to satisfy the db.KVDB interface.
func (aspen *aspenImpl) Close() error {
	return nil
}
