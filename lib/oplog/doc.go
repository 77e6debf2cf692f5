// Package oplog implements the typed operation log of the store. It records
// every applied operation together with its result code and can persist and
// replay the log.
//
// The package focuses on:
//   - A compact Record type coupling an operation to its outcome
//   - Interchangeable codecs for record serialization
//   - An append-only Journal with checksummed, versioned persistence
//   - Replay of successful mutations onto any store.IStore
//
// Key Components:
//
//   - Record: A single log entry holding the sequence number, the operation
//     and the store.RetCode it produced when it was applied.
//
//   - Codec Interface: Abstraction over record serialization with three
//     implementations: a custom binary format (NewBinaryCodec, fastest and
//     most compact), json (NewJSONCodec, human-readable) and gob
//     (NewGOBCodec, zero-maintenance Go-native encoding).
//
//   - Journal: The append-only log itself. Records gain strictly increasing
//     sequence numbers on Append. Save/Load persist the journal with
//     a magic number, a format version and an xxhash64 checksum per record
//     frame so corrupted files are detected instead of replayed.
//
//   - Replay: Re-applies all successful mutation records in order. Reads and
//     failed operations are skipped, so a journal replayed against an empty
//     store reproduces the state the journal was recorded from.
//
// The dispatch package (github.com/gatekv/gatekv/lib/dispatch) feeds a
// journal automatically when one is attached to a dispatcher.
package oplog
