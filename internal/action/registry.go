package action

import (
	"sync"

	"github.com/allisson/hivelvet/internal/errors"
)

var (
	// ErrInvalidHandler indicates a nil handler or one without a name.
	ErrInvalidHandler = errors.Wrap(errors.ErrInvalidInput, "invalid action handler")

	// ErrDuplicateHandler indicates a handler name is already registered.
	ErrDuplicateHandler = errors.Wrap(errors.ErrConflict, "action handler already registered")

	// ErrHandlerNotFound indicates no handler is registered under the name.
	ErrHandlerNotFound = errors.Wrap(errors.ErrNotFound, "action handler not found")
)

// Catalog is the read side of the registry used by privilege discovery.
type Catalog interface {
	// Names returns every registered qualified name in registration order.
	Names() []string

	// Inspect returns the markers of the named handler or ErrHandlerNotFound.
	Inspect(name string) (Info, error)
}

// Registry holds the action handlers known to the application. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h to the registry.
func (r *Registry) Register(h Handler) error {
	if h == nil || h.Name() == "" {
		return ErrInvalidHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := h.Name()
	if _, ok := r.handlers[name]; ok {
		return errors.Wrapf(ErrDuplicateHandler, "name %q", name)
	}
	r.handlers[name] = h
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers every handler and panics on the first failure.
func (r *Registry) MustRegister(handlers ...Handler) {
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
}

// Unregister removes the named handler.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[name]; !ok {
		return errors.Wrapf(ErrHandlerNotFound, "name %q", name)
	}
	delete(r.handlers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Names returns a snapshot of the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Inspect describes the named handler.
func (r *Registry) Inspect(name string) (Info, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return Info{}, errors.Wrapf(ErrHandlerNotFound, "name %q", name)
	}
	return Info{Name: name, Markers: MarkersOf(h)}, nil
}

// Handlers returns the registered handlers in registration order.
func (r *Registry) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]Handler, 0, len(r.order))
	for _, name := range r.order {
		handlers = append(handlers, r.handlers[name])
	}
	return handlers
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
