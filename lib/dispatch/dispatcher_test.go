package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekv/gatekv/lib/db"
	"github.com/gatekv/gatekv/lib/db/engines/aspen"
	"github.com/gatekv/gatekv/lib/handler"
	"github.com/gatekv/gatekv/lib/op"
	"github.com/gatekv/gatekv/lib/oplog"
	"github.com/gatekv/gatekv/lib/store"
	"github.com/gatekv/gatekv/lib/store/memstore"
)

func newTestStore() store.IStore {
	return memstore.NewMemStore(func() db.KVDB {
		return aspen.NewAspenDB(nil)
	})
}

func validDesc(name string) handler.Descriptor {
	return handler.Descriptor{Name: name, Timeout: 100 * time.Millisecond}
}

func TestRunValidationPass(t *testing.T) {
	d := NewDispatcher(nil)

	descs := []handler.Descriptor{
		{Name: "svc", Timeout: 100 * time.Millisecond},
		{Name: "", Timeout: 100 * time.Millisecond},
		{Name: "zero", Timeout: 0},
	}

	results := d.Run(handler.NewDefaultHandler(), descs)
	require.Len(t, results, 3)
	assert.Equal(t, StatusActive, results["svc"].Kind)
	assert.Equal(t, StatusInactive, results[""].Kind)
	assert.Equal(t, StatusInactive, results["zero"].Kind)
}

func TestRunWithStoreScenario(t *testing.T) {
	d := NewDispatcher(nil)
	st := newTestStore()

	subs := []Submission{
		{Desc: validDesc("s1"), Op: op.Operation{Type: op.OpTInsert, Key: "language", Value: "Rust"}},
		{Desc: validDesc("s2"), Op: op.Operation{Type: op.OpTInsert, Key: "year", Value: "2010"}},
		{Desc: validDesc("s3"), Op: op.Operation{Type: op.OpTRetrieve, Key: "language"}},
		{Desc: validDesc("s4"), Op: op.Operation{Type: op.OpTDelete, Key: "year"}},
	}

	results := d.RunWithStore(st, handler.NewDefaultHandler(), subs)
	require.Len(t, results, 2, "language and year each keep one status")
	assert.Equal(t, StatusActive, results["language"].Kind)
	assert.Equal(t, StatusActive, results["year"].Kind)

	// year was deleted, a later update must fail and overwrite the status
	results = d.RunWithStore(st, handler.NewDefaultHandler(), []Submission{
		{Desc: validDesc("s5"), Op: op.Operation{Type: op.OpTUpdate, Key: "year", Value: "2011"}},
	})
	assert.Equal(t, StatusInactive, results["year"].Kind)

	_, found, err := st.Retrieve("year")
	require.NoError(t, err)
	assert.False(t, found, "the failed update must not recreate the key")
}

func TestRunWithStoreShortCircuit(t *testing.T) {
	d := NewDispatcher(nil)
	st := newTestStore()

	veto := handler.HandlerFunc(func(handler.Descriptor) error {
		return errors.New("always fails")
	})

	subs := []Submission{
		{Desc: validDesc("s1"), Op: op.Operation{Type: op.OpTInsert, Key: "a", Value: "1"}},
		{Desc: validDesc("s2"), Op: op.Operation{Type: op.OpTInsert, Key: "b", Value: "2"}},
	}

	results := d.RunWithStore(st, veto, subs)
	require.Len(t, results, 2)
	for key, status := range results {
		assert.Equal(t, StatusInactive, status.Kind, "key %q", key)
	}

	// the store must be entirely unmutated
	info, err := st.GetDBInfo()
	require.NoError(t, err)
	assert.Equal(t, 0, info.Entries)
}

func TestRunWithStoreOrderDependence(t *testing.T) {
	d := NewDispatcher(nil)
	st := newTestStore()

	// the update only succeeds because the insert ran before it
	subs := []Submission{
		{Desc: validDesc("s1"), Op: op.Operation{Type: op.OpTInsert, Key: "k", Value: "v1"}},
		{Desc: validDesc("s2"), Op: op.Operation{Type: op.OpTUpdate, Key: "k", Value: "v2"}},
	}

	results := d.RunWithStore(st, handler.NewNoopHandler(), subs)
	assert.Equal(t, StatusActive, results["k"].Kind)

	value, found, err := st.Retrieve("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v2", value)
}

func TestBoardRemembersLatestStatus(t *testing.T) {
	d := NewDispatcher(nil)
	st := newTestStore()

	d.RunWithStore(st, handler.NewNoopHandler(), []Submission{
		{Desc: validDesc("s1"), Op: op.Operation{Type: op.OpTInsert, Key: "k", Value: "v"}},
	})

	status, ok := d.Peek("k")
	require.True(t, ok)
	assert.Equal(t, StatusActive, status.Kind)

	_, ok = d.Peek("never-touched")
	assert.False(t, ok)

	d.RunWithStore(st, handler.NewNoopHandler(), []Submission{
		{Desc: validDesc("s2"), Op: op.Operation{Type: op.OpTDelete, Key: "k"}},
		{Desc: validDesc("s3"), Op: op.Operation{Type: op.OpTDelete, Key: "k"}},
	})

	// the second delete failed and overwrote the status of the first
	status, ok = d.Peek("k")
	require.True(t, ok)
	assert.Equal(t, StatusInactive, status.Kind)

	board := d.Board()
	require.Len(t, board, 1)
	assert.Equal(t, StatusInactive, board["k"].Kind)
}

func TestSubmitMatchesSynchronousPath(t *testing.T) {
	sync := NewDispatcher(nil)
	async := NewDispatcher(nil)

	subs := []Submission{
		{Desc: validDesc("s1"), Op: op.Operation{Type: op.OpTInsert, Key: "language", Value: "Rust"}},
		{Desc: validDesc("s2"), Op: op.Operation{Type: op.OpTUpdate, Key: "language", Value: "Go"}},
		{Desc: validDesc("s3"), Op: op.Operation{Type: op.OpTDelete, Key: "missing"}},
		{Desc: handler.Descriptor{Name: "", Timeout: time.Second}, Op: op.Operation{Type: op.OpTInsert, Key: "vetoed", Value: "x"}},
	}

	want := sync.RunWithStore(newTestStore(), handler.NewDefaultHandler(), subs)

	done := async.Submit(newTestStore(), handler.NewDefaultHandler(), subs)
	select {
	case got := <-done:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("submission did not complete")
	}

	// after completion no key is left pending
	for key, status := range async.Board() {
		assert.NotEqual(t, StatusPending, status.Kind, "key %q", key)
	}
}

func TestSubmitMarksKeysPending(t *testing.T) {
	d := NewDispatcher(nil)
	st := newTestStore()

	// a handler that blocks until released keeps the batch in flight
	release := make(chan struct{})
	blocking := handler.HandlerFunc(func(handler.Descriptor) error {
		<-release
		return nil
	})

	done := d.Submit(st, blocking, []Submission{
		{Desc: validDesc("s1"), Op: op.Operation{Type: op.OpTInsert, Key: "k", Value: "v"}},
	})

	status, ok := d.Peek("k")
	require.True(t, ok)
	assert.Equal(t, StatusPending, status.Kind)
	assert.NotZero(t, status.PendingID)

	close(release)
	results := <-done
	assert.Equal(t, StatusActive, results["k"].Kind)
}

func TestJournalHook(t *testing.T) {
	journal := oplog.NewJournal(nil)
	d := NewDispatcher(&Options{Journal: journal})
	st := newTestStore()

	d.RunWithStore(st, handler.NewDefaultHandler(), []Submission{
		{Desc: validDesc("s1"), Op: op.Operation{Type: op.OpTInsert, Key: "k", Value: "v"}},
		{Desc: handler.Descriptor{Name: "", Timeout: time.Second}, Op: op.Operation{Type: op.OpTInsert, Key: "skipped", Value: "x"}},
		{Desc: validDesc("s3"), Op: op.Operation{Type: op.OpTDelete, Key: "absent"}},
	})

	// vetoed operations never ran, so only two records exist
	require.Equal(t, 2, journal.Len())

	var records []oplog.Record
	journal.Scan(func(rec oplog.Record) bool {
		records = append(records, rec)
		return true
	})
	assert.Equal(t, "k", records[0].Op.Key)
	assert.Equal(t, store.RetCSuccess, records[0].Code)
	assert.Equal(t, "absent", records[1].Op.Key)
	assert.Equal(t, store.RetCNotFound, records[1].Code)
}
