package oplog

import (
	"encoding/binary"
	"fmt"

	"github.com/gatekv/gatekv/lib/store"
)

// NewBinaryCodec creates a new codec using a custom binary format
// optimized for speed and efficiency
func NewBinaryCodec() Codec {
	return &binaryCodecImpl{}
}

// binaryCodecImpl implements the Codec interface using a custom binary format
type binaryCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see oplog.Codec)
// --------------------------------------------------------------------------

// Encode writes 8 bytes sequence number, 8 bytes result code (both big
// endian) followed by the operation in its wire format.
func (c binaryCodecImpl) Encode(rec Record) ([]byte, error) {
	opBytes := rec.Op.Serialize()

	result := make([]byte, 16+len(opBytes))
	binary.BigEndian.PutUint64(result[0:8], rec.Seq)
	binary.BigEndian.PutUint64(result[8:16], uint64(rec.Code))
	copy(result[16:], opBytes)

	return result, nil
}

func (c binaryCodecImpl) Decode(data []byte, rec *Record) error {
	if len(data) < 16 {
		return fmt.Errorf("data too short for record header")
	}

	rec.Seq = binary.BigEndian.Uint64(data[0:8])
	rec.Code = store.RetCode(binary.BigEndian.Uint64(data[8:16]))

	return rec.Op.Deserialize(data[16:])
}
