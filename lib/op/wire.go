package op

import (
	"encoding/binary"
	"fmt"
)

// SizeBytes returns the exact number of bytes needed to serialize this operation
func (o *Operation) SizeBytes() int {
	return 1 + 4 + len(o.Key) + len(o.Value) // Type + KeyLen + Key + Value
}

// Serialize serializes an operation into a byte array with the format:
// 1 byte for operation type,
// 4 bytes for key length (big endian),
// N bytes for key data,
// N bytes for value data (rest of the buffer)
func (o *Operation) Serialize() []byte {
	// Use SizeBytes to calculate the total size needed
	totalSize := o.SizeBytes()

	result := make([]byte, totalSize)

	// Set operation type
	result[0] = byte(o.Type)

	// Set key length (4 bytes, big endian)
	binary.BigEndian.PutUint32(result[1:5], uint32(len(o.Key)))

	// Copy key bytes
	copy(result[5:5+len(o.Key)], o.Key)

	// Copy value, an empty value contributes no bytes
	copy(result[5+len(o.Key):], o.Value)

	return result
}

// Deserialize extracts all Operation fields from a byte array.
func (o *Operation) Deserialize(data []byte) error {
	// Minimum size: 1 (Type) + 4 (KeyLen) = 5 bytes
	if len(data) < 5 {
		return fmt.Errorf("data too short for operation")
	}

	// Extract operation type
	o.Type = OpType(data[0])

	// Extract key length
	keyLen := binary.BigEndian.Uint32(data[1:5])

	// Validate key length
	if len(data) < 5+int(keyLen) {
		return fmt.Errorf("data too short for key of length %d", keyLen)
	}

	// Extract key
	o.Key = string(data[5 : 5+keyLen])

	// Extract value, everything after the key belongs to the value
	o.Value = string(data[5+int(keyLen):])

	return nil
}
