package constraint

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Constructor builds a constraint instance from its configuration parameters.
// Params is never nil.
type Constructor func(params map[string]any) (Constraint, error)

// NotFoundError reports a constraint kind with no registered constructor.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("constraint class %q not found", e.Kind)
}

// Registry stores constraint constructors by kind, providing discovery and
// duplication safeguards.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns a registry with the built-in constraints registered
// under their short kind and the `Assert\` qualified alias.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	registerBuiltins(reg)
	return reg
}

// NewEmptyRegistry creates a registry without any constructors.
func NewEmptyRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor for kind. Duplicate kinds return an error.
func (r *Registry) Register(kind string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("constraint: constructor is required")
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("constraint: kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[kind]; exists {
		return fmt.Errorf("constraint: kind %q already registered", kind)
	}
	r.ctors[kind] = ctor
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind string, ctor Constructor) {
	if err := r.Register(kind, ctor); err != nil {
		panic(err)
	}
}

// CanResolve reports whether kind has a registered constructor.
func (r *Registry) CanResolve(kind string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[kind]
	return ok
}

// Construct instantiates the constraint registered for kind.
func (r *Registry) Construct(kind string, params map[string]any) (Constraint, error) {
	if r == nil {
		return nil, &NotFoundError{Kind: kind}
	}
	r.mu.RLock()
	ctor, ok := r.ctors[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Kind: kind}
	}

	if params == nil {
		params = map[string]any{}
	}
	c, err := ctor(params)
	if err != nil {
		return nil, fmt.Errorf("constraint: construct %s: %w", kind, err)
	}
	return c, nil
}

// List returns a sorted list of registered kinds.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.ctors))
	for kind := range r.ctors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
