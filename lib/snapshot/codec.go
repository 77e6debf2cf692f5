package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/gatekv/gatekv/lib/db"
)

// --------------------------------------------------------------------------
// Line-Oriented Text Format
// --------------------------------------------------------------------------

// ReadAll parses the line-oriented snapshot format. Each line is split on
// the FIRST colon into key and value, lines without a colon are ignored.
// The entries are returned in file order including duplicate keys, loading
// them into a store collapses duplicates last-write-wins.
//
// Known limitation: the format defines no escaping, a colon inside a key is
// mis-parsed as the key/value separator.
func ReadAll(r io.Reader) ([]db.Entry, error) {
	var entries []db.Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		entries = append(entries, db.Entry{
			Key:   line[:idx],
			Value: line[idx+1:],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read snapshot")
	}
	return entries, nil
}

// WriteAll emits one "key:value" line per entry in the given order. Store
// snapshots are ordered lexicographically by key, so exporting one produces
// a reproducible file.
func WriteAll(w io.Writer, entries []db.Entry) error {
	bw := bufio.NewWriter(w)
	for _, entry := range entries {
		if _, err := fmt.Fprintf(bw, "%s:%s\n", entry.Key, entry.Value); err != nil {
			return errors.Wrapf(err, "failed to write snapshot entry %q", entry.Key)
		}
	}
	return errors.Wrap(bw.Flush(), "failed to flush snapshot")
}
