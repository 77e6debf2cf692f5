package dispatch

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/gatekv/gatekv/lib/handler"
	"github.com/gatekv/gatekv/lib/logging"
	"github.com/gatekv/gatekv/lib/op"
	"github.com/gatekv/gatekv/lib/oplog"
	"github.com/gatekv/gatekv/lib/store"
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Submission pairs the descriptor a handler validates with the operation
// that runs if validation admits it.
type Submission struct {
	Desc handler.Descriptor `json:"desc"`
	Op   op.Operation       `json:"op"`
}

// Options configures the dispatcher behavior during initialization
type Options struct {
	// Journal receives a record for every operation the dispatcher applies.
	// Optional, nil disables journaling.
	Journal *oplog.Journal
}

// Dispatcher sequences handler validation and operation application and
// aggregates a Status per key. Validation gates execution: an operation whose
// descriptor is vetoed never reaches the store.
//
// The dispatcher keeps the most recent status of every key it has touched on
// an internal board that survives across batches (see Board and Peek).
type Dispatcher struct {
	id      string
	board   *xsync.MapOf[string, Status]
	pending atomic.Uint64
	journal *oplog.Journal
	log     *zap.SugaredLogger
}

// NewDispatcher creates a dispatcher with the specified options (optional).
//
// Thread-safety: This function is not thread-safe and should only be called
// once per dispatcher during initialization.
func NewDispatcher(opts *Options) *Dispatcher {
	if opts == nil {
		opts = &Options{}
	}

	id := uuid.NewString()
	return &Dispatcher{
		id:      id,
		board:   xsync.NewMapOf[string, Status](),
		journal: opts.Journal,
		log:     logging.GetLogger("dispatch").With("dispatcher", id),
	}
}

// ID returns the unique id of this dispatcher instance.
func (d *Dispatcher) ID() string {
	return d.id
}

// --------------------------------------------------------------------------
// Synchronous Paths
// --------------------------------------------------------------------------

// Run performs a pure validation pass: every descriptor is handed to the
// handler in input order and its name is recorded as active or inactive. No
// store is involved.
//
// The returned map contains an entry for every submitted descriptor name,
// failures are visible only as inactive statuses, never as errors.
func (d *Dispatcher) Run(h handler.IHandler, descs []handler.Descriptor) map[string]Status {
	results := make(map[string]Status, len(descs))

	for _, desc := range descs {
		status := Status{Kind: StatusActive}
		if err := h.Handle(desc); err != nil {
			d.log.Debugf("descriptor %q rejected: %v", desc.Name, err)
			validationFailures.Inc()
			status = Status{Kind: StatusInactive}
		}
		results[desc.Name] = status
		d.board.Store(desc.Name, status)
	}
	return results
}

// RunWithStore applies a batch of submissions to the store in exact input
// order. For each submission the handler validates the descriptor first: on
// veto the operation is skipped and the key recorded as inactive, the store
// stays untouched. Admitted operations record active on success and inactive
// on their own failure (e.g. a delete of an absent key).
//
// Per-item failures never abort the batch, the returned map always holds a
// status for every submitted key.
func (d *Dispatcher) RunWithStore(st store.IStore, h handler.IHandler, subs []Submission) map[string]Status {
	start := time.Now()

	results := make(map[string]Status, len(subs))
	for i := range subs {
		status := d.applyOne(st, h, &subs[i])
		results[subs[i].Op.Key] = status
		d.board.Store(subs[i].Op.Key, status)
	}

	// Log if the batch took long
	if elapsed := time.Since(start); elapsed > time.Millisecond {
		d.log.Warnf("batch took long to apply. %d submissions, took %.2fms", len(subs), float64(elapsed)/float64(time.Millisecond))
	}
	batchDuration.UpdateDuration(start)

	return results
}

// applyOne runs validation and, if admitted, the operation itself.
func (d *Dispatcher) applyOne(st store.IStore, h handler.IHandler, sub *Submission) Status {
	if err := h.Handle(sub.Desc); err != nil {
		d.log.Debugf("descriptor %q rejected, skipping %s on key %q: %v", sub.Desc.Name, sub.Op.Type, sub.Op.Key, err)
		validationFailures.Inc()
		opCounter(sub.Op.Type, "rejected").Inc()
		return Status{Kind: StatusInactive}
	}

	_, err := sub.Op.Apply(st)
	if d.journal != nil {
		d.journal.Append(sub.Op, store.CodeOf(err))
	}
	if err != nil {
		d.log.Debugf("%s on key %q failed: %v", sub.Op.Type, sub.Op.Key, err)
		opCounter(sub.Op.Type, "inactive").Inc()
		return Status{Kind: StatusInactive}
	}
	opCounter(sub.Op.Type, "active").Inc()
	return Status{Kind: StatusActive}
}

// --------------------------------------------------------------------------
// Asynchronous Path
// --------------------------------------------------------------------------

// Submit schedules a batch for asynchronous application. Every submitted key
// is immediately marked pending on the board with a per-dispatcher unique id.
// A single worker goroutine then applies the batch in submission order, so
// the ordering guarantee of RunWithStore carries over. The final status map
// is delivered on the returned channel, which is closed afterwards.
//
// Thread-safety: The caller must ensure that no conflicting synchronous
// batch runs against the same store while the submission is in flight,
// otherwise the interleaving of the two batches is unspecified.
func (d *Dispatcher) Submit(st store.IStore, h handler.IHandler, subs []Submission) <-chan map[string]Status {
	id := d.pending.Add(1)
	for i := range subs {
		d.board.Store(subs[i].Op.Key, Status{Kind: StatusPending, PendingID: id})
	}

	done := make(chan map[string]Status, 1)
	go func() {
		defer close(done)
		d.log.Debugf("applying submission %d (%d operations)", id, len(subs))
		done <- d.RunWithStore(st, h, subs)
	}()
	return done
}

// --------------------------------------------------------------------------
// Status Board
// --------------------------------------------------------------------------

// Peek returns the most recent status recorded for the key. The boolean
// reports whether the dispatcher has ever touched the key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (d *Dispatcher) Peek(key string) (Status, bool) {
	return d.board.Load(key)
}

// Board returns a copy of the full status board.
//
// Thread-safety: This method is thread-safe. Statuses recorded while the
// copy is taken may or may not be included.
func (d *Dispatcher) Board() map[string]Status {
	board := make(map[string]Status, d.board.Size())
	d.board.Range(func(key string, status Status) bool {
		board[key] = status
		return true
	})
	return board
}

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

var (
	validationFailures = metrics.NewCounter("gatekv_dispatch_validation_failures_total")
	batchDuration      = metrics.NewHistogram("gatekv_dispatch_batch_duration_seconds")
)

// opCounter returns the counter for an operation type and outcome.
func opCounter(t op.OpType, outcome string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`gatekv_dispatch_operations_total{type=%q,outcome=%q}`, t, outcome))
}

// WriteMetrics dumps all dispatcher metrics in Prometheus text format.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
