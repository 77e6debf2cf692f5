// Package op defines the typed operations that can be executed against a
// store.IStore and a compact binary wire format for them.
//
// The package focuses on:
//   - A closed set of operation types (insert, retrieve, delete, update)
//   - Uniform execution through Operation.Apply with typed store errors
//   - A self-describing Summary of what an applied operation did
//   - A length-prefixed binary encoding for journaling and transport
//
// Key Components:
//
//   - Operation: A value describing one request. Operations are plain data,
//     they carry no store reference and can be built, serialized and replayed
//     independently of execution.
//
//   - Apply: Executes an operation against a store and returns a Summary.
//     The store's presence rules apply unchanged: delete and update fail with
//     store.RetCNotFound for absent keys, and a failed operation never
//     modifies the store. Apply additionally turns a retrieve miss into a
//     RetCNotFound error since an executed retrieve demands a definite answer.
//
//   - Wire Format: Serialize produces 1 byte operation type, 4 bytes key
//     length (big endian), the key bytes, and the value as the remainder of
//     the buffer. The value needs no length prefix because it always extends
//     to the end. Deserialize validates the header and key bounds.
//
// Operation types marshal to and from their lowercase names in JSON, so batch
// files and journal exports stay readable.
package op
