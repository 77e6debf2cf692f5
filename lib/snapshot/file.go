package snapshot

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/gatekv/gatekv/lib/db"
)

// --------------------------------------------------------------------------
// File Helpers
// --------------------------------------------------------------------------

// ReadFile loads a text snapshot from the given path.
func ReadFile(path string) ([]db.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open snapshot file %s", path)
	}
	defer f.Close()

	return ReadAll(f)
}

// WriteFile writes a text snapshot to the given path. The data is written to
// a temporary file in the same directory first and moved into place with a
// rename, so readers never observe a partially written snapshot.
func WriteFile(path string, entries []db.Entry) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary snapshot file in %s", dir)
	}
	tmpPath := tmp.Name()

	if err := WriteAll(tmp, entries); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to close temporary snapshot file %s", tmpPath)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to move snapshot into place at %s", path)
	}
	return nil
}
