// Package dispatch sequences handler validation and operation application
// and aggregates per-key statuses. It is the execution layer between callers
// that build operations and the store that applies them.
//
// The package focuses on:
//   - Validation-gated execution: a vetoed descriptor skips its operation
//   - Strict input-order application, no reordering or batching
//   - Failure downgrading: per-item failures become inactive statuses
//   - A concurrent status board remembering the latest status per key
//
// Key Components:
//
//   - Status/StatusKind: The per-key outcome vocabulary (active, inactive,
//     pending). Each new operation overwrites the previous status of its
//     key, no state is sticky and none is terminal.
//
//   - Dispatcher.Run: Pure validation pass over descriptors, no store
//     involved. Yields active/inactive per descriptor name.
//
//   - Dispatcher.RunWithStore: The store-integrated path. For every
//     submission the handler validates the descriptor first, only admitted
//     operations reach the store. The result map always contains a status
//     for every submitted key, failures are never raised as errors.
//
//   - Dispatcher.Submit: Asynchronous variant of RunWithStore. Submitted
//     keys are marked pending on the board until a single worker goroutine
//     has applied the batch in submission order.
//
//   - Journal Hook: A dispatcher created with Options.Journal records every
//     applied operation and its result code into the operation log (see
//     github.com/gatekv/gatekv/lib/oplog).
//
// Observability: the package exposes VictoriaMetrics counters for applied
// operations by type and outcome, validation failures, and a batch duration
// histogram. WriteMetrics dumps them in Prometheus text format.
package dispatch
