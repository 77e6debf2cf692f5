package oplog

import (
	"github.com/gatekv/gatekv/lib/op"
	"github.com/gatekv/gatekv/lib/store"
)

// Record is a single entry of the operation log: the operation that was
// applied, the result code it produced and its position in the log.
type Record struct {
	Seq  uint64        `json:"seq"`
	Op   op.Operation  `json:"op"`
	Code store.RetCode `json:"code"`
}

// Codec is the interface for all record serializers.
type Codec interface {
	// Encode serializes a Record into a byte array
	// It returns the serialized byte array and an error if any
	Encode(rec Record) ([]byte, error)
	// Decode deserializes a byte array into a Record
	// It takes a byte array and a pointer to a Record as parameters
	// It returns an error if any
	Decode(data []byte, rec *Record) error
}
