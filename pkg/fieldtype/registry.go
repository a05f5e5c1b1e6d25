package fieldtype

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry tracks custom field-type identifiers provided by the host. Every
// core identifier is implicitly known; an empty registry still resolves them.
type Registry struct {
	mu    sync.RWMutex
	types map[ID]struct{}
}

// NewRegistry constructs a registry seeded with the supplied custom types.
// Blank identifiers are ignored.
func NewRegistry(custom ...ID) *Registry {
	reg := &Registry{types: make(map[ID]struct{}, len(custom))}
	for _, id := range custom {
		_ = reg.Register(id)
	}
	return reg
}

// Register adds a custom identifier. Registering the same identifier twice is
// a no-op.
func (r *Registry) Register(id ID) error {
	if r == nil {
		return fmt.Errorf("fieldtype: registry is nil")
	}
	trimmed := ID(strings.TrimSpace(string(id)))
	if trimmed == "" {
		return fmt.Errorf("fieldtype: type identifier is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.types == nil {
		r.types = make(map[ID]struct{})
	}
	r.types[trimmed] = struct{}{}
	return nil
}

// Has reports whether id names a resolvable concrete type, either a core
// identifier or a registered custom one.
func (r *Registry) Has(id ID) bool {
	if IsCore(id) {
		return true
	}
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[id]
	return ok
}

// List returns the registered custom identifiers in lexical order.
func (r *Registry) List() []ID {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ID, 0, len(r.types))
	for id := range r.types {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
