// Package snapshot implements the persistence adapters for store snapshots:
// a line-oriented text codec, atomic file helpers and a revisioned archive.
//
// The package focuses on:
//   - The "key:value" one-line-per-entry text format
//   - Crash-safe snapshot files via write-to-temp-and-rename
//   - A Backend abstraction archiving multiple snapshot revisions
//
// Text Format:
//
// Each line is one entry, written as the key, a colon, and the value. On
// load each line is split at the FIRST colon, lines without any colon are
// skipped. The format defines no escaping: a colon inside a key will be
// mis-parsed, this is a documented limitation of the format rather than a
// feature. Duplicate keys are allowed in the input and collapse to the last
// occurrence when the entries are loaded into a store. Stores export their
// entries ordered lexicographically by key, so written snapshots are
// reproducible and diff-friendly.
//
// Archive Backends:
//
// The Backend interface stores encoded snapshots by caller-chosen revision
// numbers. NewMemoryBackend keeps revisions in process memory (useful for
// tests), NewNutsDBBackend persists each revision into a bucket of an
// embedded nutsdb database so snapshot history survives restarts.
package snapshot
