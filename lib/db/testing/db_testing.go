package testing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gatekv/gatekv/lib/db"
)

// DBFactory is a function that creates a new instance of a KVDB implementation
type DBFactory func() db.KVDB

// RunKVDBTests runs a comprehensive test suite for a KVDB implementation.
func RunKVDBTests(t *testing.T, name string, factory DBFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("SetIfPresent", func(t *testing.T) {
			testSetIfPresent(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Len", func(t *testing.T) {
			testLen(t, factory())
		})

		t.Run("Snapshot", func(t *testing.T) {
			testSnapshot(t, factory())
		})

		t.Run("Load", func(t *testing.T) {
			testLoad(t, factory())
		})

		t.Run("SnapshotLoad", func(t *testing.T) {
			testSnapshotLoad(t, factory)
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})

		t.Run("ManyKeys", func(t *testing.T) {
			testManyKeys(t, factory())
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Checks if the database supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, database db.KVDB, feature db.Feature) {
	if !database.SupportsFeature(feature) {
		t.Skip()
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)

	testKey := "test-key"
	testValue1 := "test-value1"
	testValue2 := "test-value2"

	database.Set(testKey, testValue1)

	result, exists := database.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}

	if result != testValue1 {
		t.Errorf("Expected value %s, got %s", testValue1, result)
	}

	database.Set(testKey, testValue2)

	result, exists = database.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}

	if result != testValue2 {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}

	_, exists = database.Get("nonexistent-key")
	if exists {
		t.Errorf("Expected nonexistent key to return exists=false")
	}
}

func testSetIfPresent(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureSetIfPresent)
	requireFeature(t, database, db.FeatureGet)

	testKey := "conditional-key"

	// updating an absent key must not create it
	if ok := database.SetIfPresent(testKey, "never-written"); ok {
		t.Errorf("Expected SetIfPresent on absent key to return false")
	}

	if _, exists := database.Get(testKey); exists {
		t.Errorf("Expected key %s to stay absent after failed SetIfPresent", testKey)
	}

	// updating an existing key must overwrite it
	database.Set(testKey, "initial")

	if ok := database.SetIfPresent(testKey, "updated"); !ok {
		t.Errorf("Expected SetIfPresent on existing key to return true")
	}

	result, exists := database.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after SetIfPresent", testKey)
	}
	if result != "updated" {
		t.Errorf("Expected value updated, got %s", result)
	}
}

func testDelete(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureDelete)

	database.Set("keep", "keep-value")
	database.Set("remove", "remove-value")

	if ok := database.Delete("remove"); !ok {
		t.Errorf("Expected Delete on existing key to return true")
	}

	if _, exists := database.Get("remove"); exists {
		t.Errorf("Expected key to be gone after Delete")
	}

	// deleting a missing key is a no-op
	if ok := database.Delete("remove"); ok {
		t.Errorf("Expected Delete on absent key to return false")
	}

	if ok := database.Delete("never-existed"); ok {
		t.Errorf("Expected Delete on never written key to return false")
	}

	// unrelated keys are unaffected
	result, exists := database.Get("keep")
	if !exists || result != "keep-value" {
		t.Errorf("Expected unrelated key to survive Delete, got (%s, %v)", result, exists)
	}
}

func testLen(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureDelete)

	if n := database.Len(); n != 0 {
		t.Errorf("Expected empty database to have length 0, got %d", n)
	}

	database.Set("a", "1")
	database.Set("b", "2")
	database.Set("c", "3")
	database.Set("a", "override") // overwrite must not grow the database

	if n := database.Len(); n != 3 {
		t.Errorf("Expected length 3, got %d", n)
	}

	database.Delete("b")

	if n := database.Len(); n != 2 {
		t.Errorf("Expected length 2 after delete, got %d", n)
	}
}

func testSnapshot(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureSnapshot)

	if entries := database.Snapshot(); len(entries) != 0 {
		t.Errorf("Expected empty snapshot, got %d entries", len(entries))
	}

	// insertion order differs from key order on purpose
	database.Set("cherry", "red")
	database.Set("apple", "green")
	database.Set("banana", "yellow")

	entries := database.Snapshot()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := []db.Entry{
		{Key: "apple", Value: "green"},
		{Key: "banana", Value: "yellow"},
		{Key: "cherry", Value: "red"},
	}
	for i, want := range expected {
		if entries[i] != want {
			t.Errorf("Expected entry %d to be %v, got %v", i, want, entries[i])
		}
	}

	// the snapshot is a copy, later writes must not leak into it
	database.Set("apple", "rotten")
	database.Set("date", "brown")

	if entries[0].Value != "green" {
		t.Errorf("Expected snapshot to be independent of later writes")
	}
	if len(entries) != 3 {
		t.Errorf("Expected snapshot length to stay 3, got %d", len(entries))
	}
}

func testLoad(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureLoad)

	// pre-existing state must be fully replaced
	database.Set("stale", "stale-value")

	database.Load([]db.Entry{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
		{Key: "a", Value: "3"}, // duplicate key, last occurrence wins
	})

	if _, exists := database.Get("stale"); exists {
		t.Errorf("Expected pre-existing key to be removed by Load")
	}

	result, exists := database.Get("a")
	if !exists || result != "3" {
		t.Errorf("Expected duplicate key to resolve to last value, got (%s, %v)", result, exists)
	}

	result, exists = database.Get("b")
	if !exists || result != "2" {
		t.Errorf("Expected key b to be loaded, got (%s, %v)", result, exists)
	}

	if n := database.Len(); n != 2 {
		t.Errorf("Expected length 2 after Load, got %d", n)
	}
}

func testSnapshotLoad(t *testing.T, factory DBFactory) {
	source := factory()
	defer source.Close()

	requireFeature(t, source, db.FeatureSet)
	requireFeature(t, source, db.FeatureSnapshot)
	requireFeature(t, source, db.FeatureLoad)

	numEntries := 100
	for i := 0; i < numEntries; i++ {
		source.Set(fmt.Sprintf("test-key-%03d", i), fmt.Sprintf("test-value-%d", i))
	}

	entries := source.Snapshot()

	target := factory()
	defer target.Close()

	// target holds unrelated data that must disappear
	target.Set("unrelated", "data")
	target.Load(entries)

	if target.Len() != source.Len() {
		t.Errorf("Expected target length %d, got %d", source.Len(), target.Len())
	}

	if _, exists := target.Get("unrelated"); exists {
		t.Errorf("Expected unrelated key to be removed by Load")
	}

	for i := 0; i < numEntries; i++ {
		key := fmt.Sprintf("test-key-%03d", i)
		want := fmt.Sprintf("test-value-%d", i)

		result, exists := target.Get(key)
		if !exists {
			t.Errorf("Expected key %s to exist after Load", key)
		}
		if result != want {
			t.Errorf("Expected value %s for key %s, got %s", want, key, result)
		}
	}

	// both sides must produce the identical snapshot
	targetEntries := target.Snapshot()
	if len(targetEntries) != len(entries) {
		t.Fatalf("Expected %d entries in target snapshot, got %d", len(entries), len(targetEntries))
	}
	for i := range entries {
		if targetEntries[i] != entries[i] {
			t.Errorf("Expected snapshot entry %d to be %v, got %v", i, entries[i], targetEntries[i])
		}
	}
}

func testEdgeCases(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)

	// empty key
	database.Set("", "empty-key-value")
	result, exists := database.Get("")
	if !exists || result != "empty-key-value" {
		t.Errorf("Expected empty key to be usable, got (%s, %v)", result, exists)
	}

	// empty value
	database.Set("empty-value", "")
	result, exists = database.Get("empty-value")
	if !exists || result != "" {
		t.Errorf("Expected empty value to be stored, got (%s, %v)", result, exists)
	}

	// keys with separator and non-ascii characters
	specialKeys := []string{"key:with:colons", "key with spaces", "键", "key\nwith\nnewlines"}
	for _, key := range specialKeys {
		database.Set(key, "special")
		if _, exists := database.Get(key); !exists {
			t.Errorf("Expected key %q to be usable", key)
		}
	}

	// large value
	largeValue := string(make([]byte, 1024*1024))
	database.Set("large", largeValue)
	result, exists = database.Get("large")
	if !exists || len(result) != len(largeValue) {
		t.Errorf("Expected large value to round-trip, got %d bytes", len(result))
	}
}

func testManyKeys(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureDelete)

	numKeys := 1000

	for i := 0; i < numKeys; i++ {
		database.Set(fmt.Sprintf("test-key-%d", i), fmt.Sprintf("test-value-%d", i))
	}

	if n := database.Len(); n != numKeys {
		t.Errorf("Expected %d keys, got %d", numKeys, n)
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		result, exists := database.Get(key)
		if !exists {
			t.Errorf("Expected key %s to exist", key)
		}
		if want := fmt.Sprintf("test-value-%d", i); result != want {
			t.Errorf("Expected value %s for key %s, got %s", want, key, result)
		}
	}

	// delete every second key
	for i := 0; i < numKeys; i += 2 {
		database.Delete(fmt.Sprintf("test-key-%d", i))
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		_, exists := database.Get(key)
		if i%2 == 0 && exists {
			t.Errorf("Expected key %s to be deleted", key)
		}
		if i%2 == 1 && !exists {
			t.Errorf("Expected key %s to survive", key)
		}
	}
}

func testRealisticUsage(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeatureSet)
	requireFeature(t, database, db.FeatureSetIfPresent)
	requireFeature(t, database, db.FeatureGet)
	requireFeature(t, database, db.FeatureDelete)

	numWorkers := 8
	opsPerWorker := 500

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	// each worker owns a disjoint key space so the final state is deterministic
	for w := 0; w < numWorkers; w++ {
		go func(worker int) {
			defer wg.Done()

			for i := 0; i < opsPerWorker; i++ {
				key := fmt.Sprintf("worker-%d-key-%d", worker, i%10)

				switch i % 4 {
				case 0:
					database.Set(key, fmt.Sprintf("value-%d", i))
				case 1:
					database.Get(key)
				case 2:
					database.SetIfPresent(key, fmt.Sprintf("updated-%d", i))
				case 3:
					if i%20 == 3 {
						database.Delete(key)
					} else {
						database.Get(key)
					}
				}
			}

			// leave a known final state behind
			for i := 0; i < 10; i++ {
				database.Set(fmt.Sprintf("worker-%d-key-%d", worker, i), "final")
			}
		}(w)
	}

	wg.Wait()

	for w := 0; w < numWorkers; w++ {
		for i := 0; i < 10; i++ {
			key := fmt.Sprintf("worker-%d-key-%d", w, i)
			result, exists := database.Get(key)
			if !exists {
				t.Errorf("Expected key %s to exist after concurrent usage", key)
			}
			if result != "final" {
				t.Errorf("Expected final value for key %s, got %s", key, result)
			}
		}
	}

	if n := database.Len(); n != numWorkers*10 {
		t.Errorf("Expected %d keys after concurrent usage, got %d", numWorkers*10, n)
	}
}
