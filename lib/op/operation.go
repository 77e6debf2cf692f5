package op

import (
	"fmt"

	"github.com/gatekv/gatekv/lib/store"
)

// --------------------------------------------------------------------------
// Operation Types
// --------------------------------------------------------------------------

// OpType defines the possible operations against a store.
type OpType uint8

const (
	OpTInsert   OpType = iota // Insert or update an entry.
	OpTRetrieve               // Read the value of an entry.
	OpTDelete                 // Delete an existing entry.
	OpTUpdate                 // Overwrite the value of an existing entry.
)

func (ot OpType) String() string {
	switch ot {
	case OpTInsert:
		return "insert"
	case OpTRetrieve:
		return "retrieve"
	case OpTDelete:
		return "delete"
	case OpTUpdate:
		return "update"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(ot))
	}
}

// ParseOpType converts the textual representation back to an OpType.
func ParseOpType(s string) (OpType, error) {
	switch s {
	case "insert":
		return OpTInsert, nil
	case "retrieve":
		return OpTRetrieve, nil
	case "delete":
		return OpTDelete, nil
	case "update":
		return OpTUpdate, nil
	default:
		return 0, fmt.Errorf("unknown operation type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so operation types are
// rendered by name in JSON documents.
func (ot OpType) MarshalText() ([]byte, error) {
	switch ot {
	case OpTInsert, OpTRetrieve, OpTDelete, OpTUpdate:
		return []byte(ot.String()), nil
	default:
		return nil, fmt.Errorf("unknown operation type %d", uint8(ot))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ot *OpType) UnmarshalText(text []byte) error {
	parsed, err := ParseOpType(string(text))
	if err != nil {
		return err
	}
	*ot = parsed
	return nil
}

// --------------------------------------------------------------------------
// Operation
// --------------------------------------------------------------------------

// Operation represents a single typed request against a store.
// Which fields are meaningful depends on the type: Value is ignored for
// Retrieve and Delete operations.
type Operation struct {
	Type  OpType `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Summary describes the effect of a successfully applied operation.
// For Retrieve the Value field carries the value that was read, for Insert
// and Update the value that was written, for Delete it is empty.
type Summary struct {
	Type  OpType
	Key   string
	Value string
}

func (s Summary) String() string {
	switch s.Type {
	case OpTInsert:
		return fmt.Sprintf("inserted: %s = %s", s.Key, s.Value)
	case OpTRetrieve:
		return fmt.Sprintf("retrieved: %s = %s", s.Key, s.Value)
	case OpTDelete:
		return fmt.Sprintf("deleted: %s", s.Key)
	case OpTUpdate:
		return fmt.Sprintf("updated: %s = %s", s.Key, s.Value)
	default:
		return fmt.Sprintf("unknown operation on %s", s.Key)
	}
}

// Apply executes the operation against the given store and reports what
// happened. Failed operations leave the store unchanged. A Retrieve miss is
// reported as a RetCNotFound error because the caller asked for a definite
// result, unlike store.IStore.Retrieve which reports misses via its boolean.
func (o *Operation) Apply(st store.IStore) (Summary, error) {
	switch o.Type {
	case OpTInsert:
		if err := st.Insert(o.Key, o.Value); err != nil {
			return Summary{}, err
		}
		return Summary{Type: o.Type, Key: o.Key, Value: o.Value}, nil

	case OpTRetrieve:
		value, found, err := st.Retrieve(o.Key)
		if err != nil {
			return Summary{}, err
		}
		if !found {
			return Summary{}, store.NewError(store.RetCNotFound, fmt.Sprintf("retrieve: key %q not found", o.Key))
		}
		return Summary{Type: o.Type, Key: o.Key, Value: value}, nil

	case OpTDelete:
		if err := st.Delete(o.Key); err != nil {
			return Summary{}, err
		}
		return Summary{Type: o.Type, Key: o.Key}, nil

	case OpTUpdate:
		if err := st.Update(o.Key, o.Value); err != nil {
			return Summary{}, err
		}
		return Summary{Type: o.Type, Key: o.Key, Value: o.Value}, nil

	default:
		return Summary{}, store.NewError(store.RetCInvalidOperation, fmt.Sprintf("unknown operation type %d", uint8(o.Type)))
	}
}
