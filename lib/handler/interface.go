package handler

import (
	"errors"
	"time"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Descriptor is the configuration record a handler validates before a
// dispatcher acts on it.
type Descriptor struct {
	Name    string        `json:"name"`
	Timeout time.Duration `json:"timeout"`
}

// ErrInvalidConfig is the sentinel wrapped by all validation failures.
// Use errors.Is to detect a rejection regardless of the concrete rule that
// failed.
var ErrInvalidConfig = errors.New("invalid config")

// IHandler validates descriptors on behalf of a dispatcher. A nil return
// admits the descriptor, a non-nil return vetoes it. Implementations may log
// or record what they see but must not mutate any store state.
type IHandler interface {
	// Handle validates the given descriptor.
	Handle(desc Descriptor) (err error)
}

// HandlerFunc adapts an ordinary function to the IHandler interface.
type HandlerFunc func(Descriptor) error

// Handle calls f(desc).
func (f HandlerFunc) Handle(desc Descriptor) error {
	return f(desc)
}
