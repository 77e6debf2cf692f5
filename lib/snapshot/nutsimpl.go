package snapshot

import (
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/xujiajun/nutsdb"
)

// --------------------------------------------------------------------------
// NutsDB Backend
// --------------------------------------------------------------------------

// snapshotKey is the single key used inside each revision bucket
var snapshotKey = []byte("snapshot")

func formatRevision(rev int64) string {
	return strconv.FormatInt(rev, 10)
}

func parseRevision(bucket string) (int64, error) {
	return strconv.ParseInt(bucket, 10, 64)
}

// nutsBackend implements Backend on an embedded nutsdb database with one
// bucket per revision
type nutsBackend struct {
	mu sync.Mutex
	db *nutsdb.DB
}

// NewNutsDBBackend creates an archive backend persisting revisions to an
// embedded nutsdb database in the given directory. Revisions survive process
// restarts.
func NewNutsDBBackend(dir string) (Backend, error) {
	opts := nutsdb.DefaultOptions
	opts.Dir = dir
	db, err := nutsdb.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open archive database in %s", dir)
	}
	return &nutsBackend{db: db}, nil
}

func (n *nutsBackend) Save(rev int64, data []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	err := n.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(formatRevision(rev), snapshotKey, data, 0)
	})
	return errors.Wrapf(err, "failed to save revision %d", rev)
}

func (n *nutsBackend) Latest() (int64, []byte, error) {
	revs, err := n.Revisions()
	if err != nil {
		return 0, nil, err
	}
	if len(revs) == 0 {
		return 0, nil, ErrNoRevisions
	}
	latest := revs[len(revs)-1]

	var data []byte
	err = n.db.View(func(tx *nutsdb.Tx) error {
		entry, err := tx.Get(formatRevision(latest), snapshotKey)
		if err != nil {
			return err
		}
		data = make([]byte, len(entry.Value))
		copy(data, entry.Value)
		return nil
	})
	if err != nil {
		return 0, nil, errors.Wrapf(err, "failed to load revision %d", latest)
	}
	return latest, data, nil
}

func (n *nutsBackend) Revisions() ([]int64, error) {
	var revs []int64
	err := n.db.View(func(tx *nutsdb.Tx) error {
		return tx.IterateBuckets(nutsdb.DataStructureBPTree, "*", func(bucket string) bool {
			// buckets that are not revision numbers do not belong to the archive
			if rev, err := parseRevision(bucket); err == nil {
				revs = append(revs, rev)
			}
			return true
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list archive revisions")
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i] < revs[j] })
	return revs, nil
}

func (n *nutsBackend) Close() error {
	return n.db.Close()
}
