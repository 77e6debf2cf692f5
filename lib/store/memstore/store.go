package memstore

import (
	"fmt"

	"github.com/gatekv/gatekv/lib/db"
	"github.com/gatekv/gatekv/lib/store"
)

type storeImpl struct {
	db db.KVDB
}

// NewMemStore creates a new in-memory store instance.
// This store implementation is not distributed and only works on a single node.
// The underlying db.KVDB instance is created by the given factory.
func NewMemStore(factory store.DBFactory) store.IStore {
	return &storeImpl{
		db: factory(),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Insert(key string, value string) error {
	if !s.db.SupportsFeature(db.FeatureSet) {
		return store.NewError(store.RetCUnsupportedOperation, "Insert operation is not supported")
	}
	s.db.Set(key, value)
	return nil
}

func (s *storeImpl) Retrieve(key string) (string, bool, error) {
	if !s.db.SupportsFeature(db.FeatureGet) {
		return "", false, store.NewError(store.RetCUnsupportedOperation, "Retrieve operation is not supported")
	}
	val, ok := s.db.Get(key)
	return val, ok, nil
}

func (s *storeImpl) Delete(key string) error {
	if !s.db.SupportsFeature(db.FeatureDelete) {
		return store.NewError(store.RetCUnsupportedOperation, "Delete operation is not supported")
	}
	if !s.db.Delete(key) {
		return store.NewError(store.RetCNotFound, fmt.Sprintf("delete: key %q not found", key))
	}
	return nil
}

func (s *storeImpl) Update(key string, value string) error {
	if !s.db.SupportsFeature(db.FeatureSetIfPresent) {
		return store.NewError(store.RetCUnsupportedOperation, "Update operation is not supported")
	}
	if !s.db.SetIfPresent(key, value) {
		return store.NewError(store.RetCNotFound, fmt.Sprintf("update: key %q not found", key))
	}
	return nil
}

func (s *storeImpl) Snapshot() ([]db.Entry, error) {
	if !s.db.SupportsFeature(db.FeatureSnapshot) {
		return nil, store.NewError(store.RetCUnsupportedOperation, "Snapshot operation is not supported")
	}
	return s.db.Snapshot(), nil
}

func (s *storeImpl) Load(entries []db.Entry) error {
	if !s.db.SupportsFeature(db.FeatureLoad) {
		return store.NewError(store.RetCUnsupportedOperation, "Load operation is not supported")
	}
	s.db.Load(entries)
	return nil
}

func (s *storeImpl) GetDBInfo() (db.DatabaseInfo, error) {
	return s.db.GetInfo(), nil
}
