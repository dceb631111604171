package module

import (
	"sync"

	perr "xferlock/internal/platform/errors"
)

// Registry holds the modules of one API composition so a module can be wired
// from another's ports before any routes are mounted
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Module
	order []string
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Module{}}
}

// Add registers m under its name; names must be unique
func (r *Registry) Add(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byKey[m.Name()]; dup {
		return perr.InvalidArgf("module: %q registered twice", m.Name())
	}
	r.byKey[m.Name()] = m
	r.order = append(r.order, m.Name())
	return nil
}

// MustAdd is Add that panics on a duplicate name
func (r *Registry) MustAdd(m Module) Module {
	if err := r.Add(m); err != nil {
		panic(err)
	}
	return m
}

// Names lists registered modules in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Each calls fn for every module in registration order
func (r *Registry) Each(fn func(Module)) {
	r.mu.RLock()
	mods := make([]Module, 0, len(r.order))
	for _, n := range r.order {
		mods = append(mods, r.byKey[n])
	}
	r.mu.RUnlock()
	for _, m := range mods {
		fn(m)
	}
}

// Lookup resolves a port of type T exported by the module registered as name
func Lookup[T any](r *Registry, name string) (T, error) {
	var zero T
	r.mu.RLock()
	m, ok := r.byKey[name]
	r.mu.RUnlock()
	if !ok {
		return zero, perr.NotFoundf("module: %q not registered", name)
	}
	v, ok := PortsOf[T](m)
	if !ok {
		return zero, perr.NotFoundf("module: %q exports no %T port", name, (*T)(nil))
	}
	return v, nil
}

// MustLookup is Lookup that panics when the port is missing
func MustLookup[T any](r *Registry, name string) T {
	v, err := Lookup[T](r, name)
	if err != nil {
		panic(err)
	}
	return v
}
