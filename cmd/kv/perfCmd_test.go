package kv

import (
	"fmt"
	"testing"

	"github.com/gatekv/gatekv/lib/db"
	"github.com/gatekv/gatekv/lib/db/engines/aspen"
	"github.com/gatekv/gatekv/lib/store/memstore"
)

func TestShouldSkip(t *testing.T) {
	origSkip := perfSkip
	defer func() { perfSkip = origSkip }()

	perfSkip = []string{"insert", "delete"}

	if !shouldSkip("insert") {
		t.Error("expected insert to be skipped")
	}
	if !shouldSkip("delete") {
		t.Error("expected delete to be skipped")
	}
	if shouldSkip("retrieve") {
		t.Error("expected retrieve not to be skipped")
	}
}

func TestGetKeysWraparound(t *testing.T) {
	origSpread := perfKeySpread
	defer func() { perfKeySpread = origSpread }()

	perfKeySpread = 5
	getKey, iter := getKeys("wrap")

	// indices beyond the spread must wrap onto the same key set
	if getKey(0) != getKey(perfKeySpread) {
		t.Errorf("expected getKey to wrap: %q != %q", getKey(0), getKey(perfKeySpread))
	}
	if getKey(3) != getKey(3+2*perfKeySpread) {
		t.Errorf("expected getKey to wrap: %q != %q", getKey(3), getKey(3+2*perfKeySpread))
	}

	// the iterator must visit every key exactly once
	seen := make(map[string]int)
	iter(func(k string) {
		seen[k]++
	})
	if len(seen) != perfKeySpread {
		t.Errorf("expected %d distinct keys, got %d", perfKeySpread, len(seen))
	}
	for k, n := range seen {
		if n != 1 {
			t.Errorf("key %q visited %d times", k, n)
		}
	}
}

// The delete benchmark can stop between its insert and its delete, so the
// cleanup has to drain whatever keys are left over without failing on the
// ones that are already gone.
func TestDeleteCleanupDrainsLeftoverKeys(t *testing.T) {
	origSpread := perfKeySpread
	origStore := localStore
	defer func() {
		perfKeySpread = origSpread
		localStore = origStore
	}()

	perfKeySpread = 8
	localStore = memstore.NewMemStore(func() db.KVDB {
		return aspen.NewAspenDB(nil)
	})

	getKey, iter := getKeys("delete")

	// simulate a run that stopped mid-iteration: only half the keys exist
	for i := 0; i < perfKeySpread/2; i++ {
		if err := localStore.Insert(getKey(i), "test"); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	// cleanup as the benchmark does it
	iter(func(k string) {
		_ = localStore.Delete(k)
	})

	for i := 0; i < perfKeySpread; i++ {
		_, found, err := localStore.Retrieve(getKey(i))
		if err != nil {
			t.Fatalf("retrieve failed: %v", err)
		}
		if found {
			t.Errorf("expected key %s to be gone after cleanup", getKey(i))
		}
	}
}

func TestGetKeysPrefixIsolation(t *testing.T) {
	origSpread := perfKeySpread
	defer func() { perfKeySpread = origSpread }()

	perfKeySpread = 3
	getA, _ := getKeys("insert")
	getB, _ := getKeys("delete")

	for i := 0; i < perfKeySpread; i++ {
		if getA(i) == getB(i) {
			t.Errorf("expected distinct key sets per benchmark, both produced %q", getA(i))
		}
	}

	want := fmt.Sprintf("%s-insert-0", perfKeyPrefix)
	if getA(0) != want {
		t.Errorf("expected key %q, got %q", want, getA(0))
	}
}
