package op

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// TestSizeBytes tests the SizeBytes method
func TestSizeBytes(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		expected int
	}{
		{
			name: "Operation with key and value",
			op: Operation{
				Type:  OpTInsert,
				Key:   "testkey",
				Value: "testvalue",
			},
			expected: 1 + 4 + 7 + 9, // Type + KeyLen + Key + Value
		},
		{
			name: "Operation with empty key",
			op: Operation{
				Type:  OpTInsert,
				Key:   "",
				Value: "testvalue",
			},
			expected: 1 + 4 + 0 + 9, // Type + KeyLen + Key + Value
		},
		{
			name: "Operation without value",
			op: Operation{
				Type: OpTDelete,
				Key:  "testkey",
			},
			expected: 1 + 4 + 7 + 0, // Type + KeyLen + Key
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size := tt.op.SizeBytes()
			if size != tt.expected {
				t.Errorf("SizeBytes() = %v, want %v", size, tt.expected)
			}
		})
	}
}

// TestSerializeDeserialize tests both Serialize and Deserialize methods
func TestSerializeDeserialize(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
	}{
		{
			name: "Standard operation with value",
			op: Operation{
				Type:  OpTInsert,
				Key:   "testkey",
				Value: "testvalue",
			},
		},
		{
			name: "Operation without value",
			op: Operation{
				Type: OpTDelete,
				Key:  "testkey",
			},
		},
		{
			name: "Operation with empty key",
			op: Operation{
				Type:  OpTInsert,
				Key:   "",
				Value: "testvalue",
			},
		},
		{
			name: "Update operation",
			op: Operation{
				Type:  OpTUpdate,
				Key:   "testkey",
				Value: "updated",
			},
		},
		{
			name: "Retrieve operation",
			op: Operation{
				Type: OpTRetrieve,
				Key:  "testkey",
			},
		},
		{
			name: "Operation with value containing separators",
			op: Operation{
				Type:  OpTInsert,
				Key:   "config",
				Value: "host:port:path\nsecond line",
			},
		},
		{
			name: "Operation with Unicode key",
			op: Operation{
				Type:  OpTInsert,
				Key:   "你好世界", // Hello World in Chinese
				Value: "unicode test",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Serialize
			data := tt.op.Serialize()

			// Deserialize into a new operation
			var newOp Operation
			err := newOp.Deserialize(data)
			if err != nil {
				t.Fatalf("Deserialize() error = %v", err)
			}

			// Compare original and deserialized operation
			if newOp.Type != tt.op.Type {
				t.Errorf("Type mismatch: got %v, want %v", newOp.Type, tt.op.Type)
			}
			if newOp.Key != tt.op.Key {
				t.Errorf("Key mismatch: got %q, want %q", newOp.Key, tt.op.Key)
			}
			if newOp.Value != tt.op.Value {
				t.Errorf("Value mismatch: got %q, want %q", newOp.Value, tt.op.Value)
			}

			// Verify that SizeBytes matches the serialized data length
			if tt.op.SizeBytes() != len(data) {
				t.Errorf("SizeBytes() = %d, but serialized data length = %d",
					tt.op.SizeBytes(), len(data))
			}
		})
	}
}

// TestDeserializeErrors tests error cases in Deserialize
func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		expectedErr string
	}{
		{
			name:        "Empty data",
			data:        []byte{},
			expectedErr: "data too short for operation",
		},
		{
			name:        "Data too short (less than header)",
			data:        []byte{1, 2, 3},
			expectedErr: "data too short for operation",
		},
		{
			name: "Invalid key length",
			data: func() []byte {
				data := make([]byte, 5) // Just the header
				data[0] = byte(OpTInsert)
				// Set key length to a large value that exceeds the data
				binary.BigEndian.PutUint32(data[1:5], 1000)
				return data
			}(),
			expectedErr: "data too short for key of length 1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Operation
			err := o.Deserialize(tt.data)

			// Check if we got the expected error
			if err == nil {
				t.Fatalf("Expected error but got nil")
			}
			if err.Error() != tt.expectedErr {
				t.Errorf("Expected error %q, got %q", tt.expectedErr, err.Error())
			}
		})
	}
}

// TestBinaryFormat tests the exact binary format of serialized operations
func TestBinaryFormat(t *testing.T) {
	// Create an operation
	o := Operation{
		Type:  OpTUpdate,
		Key:   "testkey",
		Value: "testvalue",
	}

	// Manually create the expected byte array
	expected := make([]byte, o.SizeBytes())
	// Type
	expected[0] = byte(OpTUpdate)
	// Key length
	binary.BigEndian.PutUint32(expected[1:5], 7) // "testkey" length
	// Key
	copy(expected[5:12], "testkey")
	// Value
	copy(expected[12:], "testvalue")

	// Serialize and compare
	serialized := o.Serialize()
	if !bytes.Equal(serialized, expected) {
		t.Errorf("Binary format does not match:\nGot:      %v\nExpected: %v", serialized, expected)
	}
}
