package handlers

import (
	"fmt"
	"sort"
	"sync"
)

// RegistryMap implements Registry using a map.
type RegistryMap struct {
	mu       sync.RWMutex
	handlers map[string]any
}

func NewRegistryMap() *RegistryMap {
	return &RegistryMap{
		handlers: make(map[string]any),
	}
}

// Names implements part of the Registry interface.
func (r *RegistryMap) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register implements part of the Registry interface.
func (r *RegistryMap) Register(name string, handler any) error {
	if name == "" {
		return fmt.Errorf("handler name must not be empty")
	}
	if handler == nil {
		return fmt.Errorf("nil handler registration: %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("duplicate handler registration: %q", name)
	}
	r.handlers[name] = handler
	return nil
}

// Lookup implements part of the Registry interface.
func (r *RegistryMap) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// MustRegister is like Register but panics on error.  It is intended for
// init() functions.
func MustRegister(r Registry, name string, handler any) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}
