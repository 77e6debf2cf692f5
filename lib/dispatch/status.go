package dispatch

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Status
// --------------------------------------------------------------------------

// StatusKind classifies the outcome of the most recent operation for a key.
type StatusKind uint8

const (
	StatusUnknown  StatusKind = iota // No operation has touched the key yet.
	StatusActive                     // The last operation succeeded.
	StatusInactive                   // Validation or the operation itself failed.
	StatusPending                    // The operation was submitted but not yet applied.
)

func (k StatusKind) String() string {
	switch k {
	case StatusUnknown:
		return "unknown"
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	case StatusPending:
		return "pending"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(k))
	}
}

// Status is the per-key outcome recorded by a dispatcher. Each new operation
// touching a key overwrites its previous status, nothing is sticky.
// PendingID is only meaningful while Kind is StatusPending, it identifies the
// in-flight submission that will complete the status.
type Status struct {
	Kind      StatusKind `json:"kind"`
	PendingID uint64     `json:"pending_id,omitempty"`
}

func (s Status) String() string {
	if s.Kind == StatusPending {
		return fmt.Sprintf("pending(%d)", s.PendingID)
	}
	return s.Kind.String()
}

// Active reports whether the last recorded operation for the key succeeded.
func (s Status) Active() bool {
	return s.Kind == StatusActive
}
