package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores named extensions (cell callbacks, option providers, custom
// formats, special sections) with duplicate safeguards.
type Registry[T any] struct {
	kind    string
	mu      sync.RWMutex
	entries map[string]T
}

// NewRegistry creates an empty registry; kind labels error messages.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:    kind,
		entries: make(map[string]T),
	}
}

// Register adds entry under name. Duplicate names return an error.
func (r *Registry[T]) Register(name string, entry T) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("render: %s name is required", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("render: %s %q already registered", r.kind, name)
	}
	r.entries[name] = entry
	return nil
}

// Get retrieves an entry by name.
func (r *Registry[T]) Get(name string) (T, error) {
	entry, ok := r.Lookup(name)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %q", ErrNotRegistered, r.kind, name)
	}
	return entry, nil
}

// Lookup is Get without the error.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	if r == nil {
		var zero T
		return zero, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[strings.TrimSpace(name)]
	return entry, ok
}

// List returns the sorted registered names.
func (r *Registry[T]) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
