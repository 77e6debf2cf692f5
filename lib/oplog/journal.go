package oplog

import (
	"bufio"
	"encoding/binary"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/gatekv/gatekv/lib/op"
	"github.com/gatekv/gatekv/lib/store"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	magicNum       = "GKVJRNL\x00" // File format identifier
	journalVersion = 1             // Journal format version

	maxFrameSize = 64 << 20 // Upper bound for a single frame, guards Load against corrupt length prefixes
)

// --------------------------------------------------------------------------
// Journal
// --------------------------------------------------------------------------

// Journal is an append-only, in-memory log of applied operations. It assigns
// each record a strictly increasing sequence number and can persist itself
// to any io.Writer and restore itself from any io.Reader.
//
// The on-disk layout is a header (magic number, version, record count)
// followed by one frame per record:
//
//	4 bytes payload length | payload | 8 bytes xxhash64 of the payload
//
// All integers are little endian. The per-frame checksum lets Load
// detect torn or corrupted frames instead of replaying garbage.
type Journal struct {
	mu      sync.Mutex
	codec   Codec
	records []Record
	nextSeq uint64
}

// NewJournal creates an empty journal using the given codec for persistence.
// A nil codec defaults to the binary codec.
func NewJournal(codec Codec) *Journal {
	if codec == nil {
		codec = NewBinaryCodec()
	}
	return &Journal{
		codec:   codec,
		nextSeq: 1,
	}
}

// Append adds the outcome of an applied operation to the log and returns the
// record including its assigned sequence number.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (j *Journal) Append(operation op.Operation, code store.RetCode) Record {
	j.mu.Lock()
	defer j.mu.Unlock()

	rec := Record{
		Seq:  j.nextSeq,
		Op:   operation,
		Code: code,
	}
	j.nextSeq++
	j.records = append(j.records, rec)
	return rec
}

// Len returns the number of records in the journal.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.records)
}

// Scan calls fn for every record in sequence order until fn returns false.
// The journal is locked for the duration of the scan, fn must not call back
// into the journal.
func (j *Journal) Scan(fn func(rec Record) bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, rec := range j.records {
		if !fn(rec) {
			return
		}
	}
}

// --------------------------------------------------------------------------
// Persistence
// --------------------------------------------------------------------------

// Save persists the journal to the writer.
//
// Thread-safety: This method is thread-safe, records appended while the
// write is running are not included.
func (j *Journal) Save(w io.Writer) error {
	j.mu.Lock()
	records := make([]Record, len(j.records))
	copy(records, j.records)
	j.mu.Unlock()

	// Use a buffered writer for better performance
	bw := bufio.NewWriterSize(w, 1024*1024) // 1 MB buffer

	// Write file header
	if _, err := bw.WriteString(magicNum); err != nil {
		return errors.Wrap(err, "failed to write journal magic number")
	}
	if err := binary.Write(bw, binary.LittleEndian, uint8(journalVersion)); err != nil {
		return errors.Wrap(err, "failed to write journal version")
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(records))); err != nil {
		return errors.Wrap(err, "failed to write record count")
	}

	// Write record frames
	for _, rec := range records {
		payload, err := j.codec.Encode(rec)
		if err != nil {
			return errors.Wrapf(err, "failed to encode record %d", rec.Seq)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(payload))); err != nil {
			return errors.Wrapf(err, "failed to write frame length for record %d", rec.Seq)
		}
		if _, err := bw.Write(payload); err != nil {
			return errors.Wrapf(err, "failed to write frame payload for record %d", rec.Seq)
		}
		if err := binary.Write(bw, binary.LittleEndian, xxhash.Sum64(payload)); err != nil {
			return errors.Wrapf(err, "failed to write frame checksum for record %d", rec.Seq)
		}
	}

	// Flush buffer to ensure all data is written
	return errors.Wrap(bw.Flush(), "failed to flush journal")
}

// Load replaces the journal contents with the records read from the
// reader. The next sequence number continues after the highest restored one.
//
// Thread-safety: This method is not thread-safe and should not be called
// concurrently with other operations.
func (j *Journal) Load(r io.Reader) error {

	// Use a buffered reader for better performance
	br := bufio.NewReaderSize(r, 1024*1024) // 1 MB buffer

	// Read and verify magic number
	magicBytes := make([]byte, len(magicNum))
	if _, err := io.ReadFull(br, magicBytes); err != nil {
		return errors.Wrap(err, "failed to read journal magic number")
	}
	if string(magicBytes) != magicNum {
		return errors.New("invalid journal file format")
	}

	// Read and verify version
	var version uint8
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return errors.Wrap(err, "failed to read journal version")
	}
	if version != journalVersion {
		return errors.Errorf("unsupported journal version %d (supported: %d)", version, journalVersion)
	}

	// Read record count
	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return errors.Wrap(err, "failed to read record count")
	}

	records := make([]Record, 0, count)
	var maxSeq uint64

	// Read record frames
	for i := uint64(0); i < count; i++ {
		var frameLen uint32
		if err := binary.Read(br, binary.LittleEndian, &frameLen); err != nil {
			return errors.Wrapf(err, "failed to read frame length of record %d", i)
		}
		if frameLen > maxFrameSize {
			return errors.Errorf("frame length %d of record %d exceeds limit", frameLen, i)
		}

		payload := make([]byte, frameLen)
		if _, err := io.ReadFull(br, payload); err != nil {
			return errors.Wrapf(err, "failed to read frame payload of record %d", i)
		}

		var checksum uint64
		if err := binary.Read(br, binary.LittleEndian, &checksum); err != nil {
			return errors.Wrapf(err, "failed to read frame checksum of record %d", i)
		}
		if got := xxhash.Sum64(payload); got != checksum {
			return errors.Errorf("checksum mismatch for record %d (journal corrupted)", i)
		}

		var rec Record
		if err := j.codec.Decode(payload, &rec); err != nil {
			return errors.Wrapf(err, "failed to decode record %d", i)
		}
		if rec.Seq > maxSeq {
			maxSeq = rec.Seq
		}
		records = append(records, rec)
	}

	j.mu.Lock()
	j.records = records
	j.nextSeq = maxSeq + 1
	j.mu.Unlock()
	return nil
}

// --------------------------------------------------------------------------
// Replay
// --------------------------------------------------------------------------

// Replay re-applies all successful mutation records to the store in sequence
// order and returns how many operations were applied. Retrieve records and
// records of failed operations are skipped: replaying a journal against an
// empty store reproduces exactly the store state that produced the journal.
func (j *Journal) Replay(st store.IStore) (int, error) {
	j.mu.Lock()
	records := make([]Record, len(j.records))
	copy(records, j.records)
	j.mu.Unlock()

	applied := 0
	for _, rec := range records {
		if rec.Code != store.RetCSuccess || rec.Op.Type == op.OpTRetrieve {
			continue
		}
		if _, err := rec.Op.Apply(st); err != nil {
			return applied, errors.Wrapf(err, "failed to replay record %d (%s %q)", rec.Seq, rec.Op.Type, rec.Op.Key)
		}
		applied++
	}
	return applied, nil
}
