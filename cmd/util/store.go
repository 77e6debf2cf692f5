package util

import (
	"errors"
	"fmt"
	"os"

	"github.com/gatekv/gatekv/lib/snapshot"
	"github.com/gatekv/gatekv/lib/store"
	"github.com/gatekv/gatekv/lib/store/memstore"
)

// OpenStore creates the store with the configured engine and hydrates it
// from the configured snapshot file. A missing snapshot file is not an
// error, the command may be the one creating it.
func OpenStore() (store.IStore, error) {
	factory, err := GetEngine()
	if err != nil {
		return nil, err
	}
	st := memstore.NewMemStore(factory)

	path := GetSnapshotPath()
	if path == "" {
		return st, nil
	}

	entries, err := snapshot.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	if err := st.Load(entries); err != nil {
		return nil, fmt.Errorf("failed to hydrate store from %s: %w", path, err)
	}
	return st, nil
}

// PersistStore writes the store state back to the configured snapshot file.
// With no configured file the store stays purely in-memory.
func PersistStore(st store.IStore) error {
	path := GetSnapshotPath()
	if path == "" {
		return nil
	}

	entries, err := st.Snapshot()
	if err != nil {
		return err
	}
	return snapshot.WriteFile(path, entries)
}
