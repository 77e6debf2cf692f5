package snapshot

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// --------------------------------------------------------------------------
// Archive Interface
// --------------------------------------------------------------------------

// ErrNoRevisions is returned by Latest when the archive holds no snapshots.
var ErrNoRevisions = errors.New("archive holds no revisions")

// Backend stores encoded snapshots by revision number so callers can keep a
// history of store states instead of a single file. Revisions are chosen by
// the caller and must be unique, saving an existing revision overwrites it.
type Backend interface {
	// Save stores the snapshot data under the given revision.
	Save(rev int64, data []byte) error
	// Latest returns the highest stored revision and its data.
	// Returns ErrNoRevisions when the archive is empty.
	Latest() (rev int64, data []byte, err error)
	// Revisions returns all stored revisions in ascending order.
	Revisions() ([]int64, error)
	// Close releases the backend resources.
	Close() error
}

// --------------------------------------------------------------------------
// Memory Backend
// --------------------------------------------------------------------------

// memoryBackend implements Backend in process memory, mainly for tests and
// for embedding applications that manage persistence themselves
type memoryBackend struct {
	mu        sync.Mutex
	revisions map[int64][]byte
}

// NewMemoryBackend creates an archive backend that holds all revisions in
// memory. Nothing survives the process.
func NewMemoryBackend() Backend {
	return &memoryBackend{
		revisions: make(map[int64][]byte),
	}
}

func (m *memoryBackend) Save(rev int64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.revisions[rev] = stored
	return nil
}

func (m *memoryBackend) Latest() (int64, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.revisions) == 0 {
		return 0, nil, ErrNoRevisions
	}

	var latest int64
	first := true
	for rev := range m.revisions {
		if first || rev > latest {
			latest = rev
			first = false
		}
	}
	return latest, m.revisions[latest], nil
}

func (m *memoryBackend) Revisions() ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	revs := make([]int64, 0, len(m.revisions))
	for rev := range m.revisions {
		revs = append(revs, rev)
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i] < revs[j] })
	return revs, nil
}

func (m *memoryBackend) Close() error {
	return nil
}
