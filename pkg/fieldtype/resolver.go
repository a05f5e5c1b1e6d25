package fieldtype

import "fmt"

// UnknownTypeError reports a validation type that is neither a short token nor
// a resolvable concrete identifier.
type UnknownTypeError struct {
	Token string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Token)
}

// Resolver maps validation type tokens onto concrete field-type identifiers.
type Resolver struct {
	registry *Registry
}

// NewResolver returns a resolver backed by registry. A nil registry resolves
// short tokens and core identifiers only.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve returns the concrete identifier for token. Resolvable identifiers
// pass through unchanged so hosts can plug in custom field types.
func (r *Resolver) Resolve(token string) (ID, error) {
	var registry *Registry
	if r != nil {
		registry = r.registry
	}
	if registry.Has(ID(token)) {
		return ID(token), nil
	}
	if id, ok := Lookup(token); ok {
		return id, nil
	}
	return "", &UnknownTypeError{Token: token}
}
