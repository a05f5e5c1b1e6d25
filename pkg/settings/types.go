package settings

import (
	"fmt"
	"strings"
)

// DefaultType is applied to definitions that omit validation.type.
const DefaultType = "text"

// ConstraintSpec names a constraint kind and the parameters used to build it.
type ConstraintSpec struct {
	Kind   string         `json:"kind" yaml:"kind"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// ValidationOptions holds the field options of a setting. Constraints keep the
// order in which they were declared; Extra carries every other free-form
// option verbatim.
type ValidationOptions struct {
	Constraints []ConstraintSpec `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Choices     []string         `json:"choices,omitempty" yaml:"choices,omitempty"`
	Extra       map[string]any   `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Definition describes a single configurable setting.
type Definition struct {
	Name    string            `json:"name" yaml:"name"`
	Type    string            `json:"type" yaml:"type"`
	Options ValidationOptions `json:"options" yaml:"options"`
}

// Schema is an ordered mapping from setting name to definition. The zero
// value is an empty schema ready for use.
type Schema struct {
	defs  []Definition
	index map[string]int
}

// NewSchema builds a schema from definitions in the given order.
func NewSchema(defs ...Definition) (Schema, error) {
	var schema Schema
	for _, def := range defs {
		if err := schema.Add(def); err != nil {
			return Schema{}, err
		}
	}
	return schema, nil
}

// MustSchema is NewSchema that panics on error. Intended for fixtures.
func MustSchema(defs ...Definition) Schema {
	schema, err := NewSchema(defs...)
	if err != nil {
		panic(err)
	}
	return schema
}

// Add appends def to the schema. Names must be unique and non-blank.
func (s *Schema) Add(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("settings: setting name is required")
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[name]; exists {
		return fmt.Errorf("settings: duplicate setting %q", name)
	}
	def.Name = name
	if strings.TrimSpace(def.Type) == "" {
		def.Type = DefaultType
	}
	s.index[name] = len(s.defs)
	s.defs = append(s.defs, def)
	return nil
}

// Get returns the definition registered under name.
func (s Schema) Get(name string) (Definition, bool) {
	idx, ok := s.index[name]
	if !ok {
		return Definition{}, false
	}
	return s.defs[idx], true
}

// Len returns the number of settings.
func (s Schema) Len() int { return len(s.defs) }

// Names returns setting names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.defs))
	for i, def := range s.defs {
		out[i] = def.Name
	}
	return out
}

// Definitions returns the definitions in schema order. The slice is a copy;
// option maps are shared and must be treated as read-only.
func (s Schema) Definitions() []Definition {
	return append([]Definition(nil), s.defs...)
}

// Data is an existing settings record keyed by setting name.
type Data map[string]any

// Has reports whether name is a key of the record, regardless of its value.
func (d Data) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Disabled is the set of setting names excluded from a form. A nil set is
// empty.
type Disabled map[string]struct{}

// NewDisabled builds a set from names.
func NewDisabled(names ...string) Disabled {
	out := make(Disabled, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}

// Has reports whether name is disabled.
func (d Disabled) Has(name string) bool {
	_, ok := d[name]
	return ok
}
