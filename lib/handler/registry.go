package handler

import (
	"fmt"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// Factory creates a ready-to-use handler instance.
type Factory func() IHandler

// Registry maps handler names to factories so applications can resolve
// handlers from configuration strings. Each New call builds a fresh instance,
// registered factories must therefore be safe to call repeatedly.
type Registry struct {
	factories *xsync.MapOf[string, Factory]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: xsync.NewMapOf[string, Factory](),
	}
}

// Register adds a factory under the given name.
// Registering an empty name or a name that is already taken is an error.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("handler name must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler %q: factory must not be nil", name)
	}
	if _, loaded := r.factories.LoadOrStore(name, factory); loaded {
		return fmt.Errorf("handler %q already registered", name)
	}
	return nil
}

// New builds a handler instance for the given name.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *Registry) New(name string) (IHandler, error) {
	factory, ok := r.factories.Load(name)
	if !ok {
		return nil, fmt.Errorf("unknown handler %q (available: %v)", name, r.Names())
	}
	return factory(), nil
}

// Names returns all registered handler names in sorted order.
func (r *Registry) Names() []string {
	var names []string
	r.factories.Range(func(name string, _ Factory) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}
