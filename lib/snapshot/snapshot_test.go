package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekv/gatekv/lib/db"
	"github.com/gatekv/gatekv/lib/db/engines/aspen"
	"github.com/gatekv/gatekv/lib/store"
	"github.com/gatekv/gatekv/lib/store/memstore"
)

func newTestStore() store.IStore {
	return memstore.NewMemStore(func() db.KVDB {
		return aspen.NewAspenDB(nil)
	})
}

func TestReadAllSplitsOnFirstColon(t *testing.T) {
	input := "language:Rust\nurl:https://example.com:8080/path\n"

	entries, err := ReadAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, db.Entry{Key: "language", Value: "Rust"}, entries[0])
	assert.Equal(t, db.Entry{Key: "url", Value: "https://example.com:8080/path"}, entries[1])
}

func TestReadAllIgnoresColonlessLines(t *testing.T) {
	input := "language:Rust\nthis line has no separator\nyear:2010\n\n"

	entries, err := ReadAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "language", entries[0].Key)
	assert.Equal(t, "year", entries[1].Key)
}

func TestReadAllEmptyKeyAndValue(t *testing.T) {
	entries, err := ReadAll(strings.NewReader(":\nkey:\n:value\n"))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, db.Entry{Key: "", Value: ""}, entries[0])
	assert.Equal(t, db.Entry{Key: "key", Value: ""}, entries[1])
	assert.Equal(t, db.Entry{Key: "", Value: "value"}, entries[2])
}

func TestDuplicateKeysCollapseOnLoad(t *testing.T) {
	input := "key:first\nkey:second\nkey:third\n"

	entries, err := ReadAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 3, "the codec itself preserves duplicates")

	st := newTestStore()
	require.NoError(t, st.Load(entries))

	value, found, err := st.Retrieve("key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "third", value, "loading collapses duplicates last-write-wins")
}

func TestWriteAllFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAll(&buf, []db.Entry{
		{Key: "language", Value: "Rust"},
		{Key: "year", Value: "2010"},
	})
	require.NoError(t, err)
	assert.Equal(t, "language:Rust\nyear:2010\n", buf.String())
}

func TestStoreRoundTrip(t *testing.T) {
	source := newTestStore()
	require.NoError(t, source.Insert("language", "Rust"))
	require.NoError(t, source.Insert("year", "2010"))
	require.NoError(t, source.Insert("", "empty key"))

	entries, err := source.Snapshot()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, entries))

	parsed, err := ReadAll(&buf)
	require.NoError(t, err)

	target := newTestStore()
	require.NoError(t, target.Load(parsed))

	targetEntries, err := target.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, entries, targetEntries)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gatekv.snap")

	want := []db.Entry{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	}
	require.NoError(t, WriteFile(path, want))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// the temporary file must be gone after the rename
	dirEntries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, dirEntries, 1)
	assert.Equal(t, "gatekv.snap", dirEntries[0].Name())
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "does-not-exist.snap"))
	assert.Error(t, err)
}

func runBackendTests(t *testing.T, backend Backend) {
	t.Helper()

	_, _, err := backend.Latest()
	assert.ErrorIs(t, err, ErrNoRevisions)

	require.NoError(t, backend.Save(1, []byte("first")))
	require.NoError(t, backend.Save(3, []byte("third")))
	require.NoError(t, backend.Save(2, []byte("second")))

	revs, err := backend.Revisions()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, revs)

	rev, data, err := backend.Latest()
	require.NoError(t, err)
	assert.Equal(t, int64(3), rev)
	assert.Equal(t, []byte("third"), data)

	// overwriting a revision replaces its data
	require.NoError(t, backend.Save(3, []byte("third again")))
	_, data, err = backend.Latest()
	require.NoError(t, err)
	assert.Equal(t, []byte("third again"), data)
}

func TestMemoryBackend(t *testing.T) {
	backend := NewMemoryBackend()
	defer backend.Close()

	runBackendTests(t, backend)
}

func TestNutsDBBackend(t *testing.T) {
	backend, err := NewNutsDBBackend(t.TempDir())
	require.NoError(t, err)
	defer backend.Close()

	runBackendTests(t, backend)
}
