package oplog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekv/gatekv/lib/db"
	"github.com/gatekv/gatekv/lib/db/engines/aspen"
	"github.com/gatekv/gatekv/lib/op"
	"github.com/gatekv/gatekv/lib/store"
	"github.com/gatekv/gatekv/lib/store/memstore"
)

func newTestStore() store.IStore {
	return memstore.NewMemStore(func() db.KVDB {
		return aspen.NewAspenDB(nil)
	})
}

func testRecords() []Record {
	return []Record{
		{Seq: 1, Op: op.Operation{Type: op.OpTInsert, Key: "language", Value: "Rust"}, Code: store.RetCSuccess},
		{Seq: 2, Op: op.Operation{Type: op.OpTRetrieve, Key: "language"}, Code: store.RetCSuccess},
		{Seq: 3, Op: op.Operation{Type: op.OpTDelete, Key: "year"}, Code: store.RetCNotFound},
		{Seq: 4, Op: op.Operation{Type: op.OpTUpdate, Key: "language", Value: "Go"}, Code: store.RetCSuccess},
		{Seq: 5, Op: op.Operation{Type: op.OpTInsert, Key: "", Value: ""}, Code: store.RetCSuccess},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codecs := map[string]Codec{
		"binary": NewBinaryCodec(),
		"json":   NewJSONCodec(),
		"gob":    NewGOBCodec(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			for _, want := range testRecords() {
				data, err := codec.Encode(want)
				require.NoError(t, err)

				var got Record
				require.NoError(t, codec.Decode(data, &got))
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestBinaryCodecRejectsShortData(t *testing.T) {
	codec := NewBinaryCodec()

	var rec Record
	assert.Error(t, codec.Decode([]byte{1, 2, 3}, &rec))
}

func TestJournalAppendAssignsSequence(t *testing.T) {
	j := NewJournal(nil)

	first := j.Append(op.Operation{Type: op.OpTInsert, Key: "a", Value: "1"}, store.RetCSuccess)
	second := j.Append(op.Operation{Type: op.OpTDelete, Key: "a"}, store.RetCSuccess)

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)
	assert.Equal(t, 2, j.Len())
}

func TestJournalScanOrderAndStop(t *testing.T) {
	j := NewJournal(nil)
	j.Append(op.Operation{Type: op.OpTInsert, Key: "a", Value: "1"}, store.RetCSuccess)
	j.Append(op.Operation{Type: op.OpTInsert, Key: "b", Value: "2"}, store.RetCSuccess)
	j.Append(op.Operation{Type: op.OpTInsert, Key: "c", Value: "3"}, store.RetCSuccess)

	var keys []string
	j.Scan(func(rec Record) bool {
		keys = append(keys, rec.Op.Key)
		return len(keys) < 2
	})
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestJournalPersistenceRoundTrip(t *testing.T) {
	for _, codec := range []Codec{NewBinaryCodec(), NewJSONCodec(), NewGOBCodec()} {
		j := NewJournal(codec)
		for _, rec := range testRecords() {
			j.Append(rec.Op, rec.Code)
		}

		var buf bytes.Buffer
		require.NoError(t, j.Save(&buf))

		restored := NewJournal(codec)
		require.NoError(t, restored.Load(&buf))
		require.Equal(t, j.Len(), restored.Len())

		var got []Record
		restored.Scan(func(rec Record) bool {
			got = append(got, rec)
			return true
		})
		var want []Record
		j.Scan(func(rec Record) bool {
			want = append(want, rec)
			return true
		})
		assert.Equal(t, want, got)

		// sequence numbering continues after the restored records
		next := restored.Append(op.Operation{Type: op.OpTInsert, Key: "x", Value: "y"}, store.RetCSuccess)
		assert.Equal(t, uint64(len(want)+1), next.Seq)
	}
}

func TestJournalLoadRejectsBadMagic(t *testing.T) {
	j := NewJournal(nil)
	assert.Error(t, j.Load(bytes.NewReader([]byte("NOTAJRNL\x01\x00\x00\x00\x00\x00\x00\x00\x00"))))
}

func TestJournalLoadDetectsCorruption(t *testing.T) {
	j := NewJournal(nil)
	j.Append(op.Operation{Type: op.OpTInsert, Key: "language", Value: "Rust"}, store.RetCSuccess)

	var buf bytes.Buffer
	require.NoError(t, j.Save(&buf))

	// flip one byte inside the frame payload
	data := buf.Bytes()
	data[len(data)-10] ^= 0xff

	restored := NewJournal(nil)
	err := restored.Load(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestJournalReplayReproducesState(t *testing.T) {
	source := newTestStore()
	j := NewJournal(nil)

	ops := []op.Operation{
		{Type: op.OpTInsert, Key: "language", Value: "Rust"},
		{Type: op.OpTInsert, Key: "year", Value: "2010"},
		{Type: op.OpTRetrieve, Key: "language"},
		{Type: op.OpTDelete, Key: "year"},
		{Type: op.OpTUpdate, Key: "year", Value: "2011"}, // fails, year was deleted
		{Type: op.OpTUpdate, Key: "language", Value: "Go"},
	}
	for _, operation := range ops {
		_, err := operation.Apply(source)
		j.Append(operation, store.CodeOf(err))
	}

	target := newTestStore()
	applied, err := j.Replay(target)
	require.NoError(t, err)
	assert.Equal(t, 4, applied, "retrieve and the failed update must be skipped")

	wantSnap, err := source.Snapshot()
	require.NoError(t, err)
	gotSnap, err := target.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, wantSnap, gotSnap)
}
