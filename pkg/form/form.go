package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-settingsform/pkg/fieldtype"
)

// Form is the in-memory Builder. It keeps descriptors in the order they were
// added and rejects duplicate names.
type Form struct {
	Name     string            `json:"name,omitempty"`
	Fields   []FieldDescriptor `json:"fields"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// New creates an empty form.
func New(name string) *Form {
	return &Form{Name: name, Fields: []FieldDescriptor{}}
}

// Add appends a field.
func (f *Form) Add(name string, typ fieldtype.ID, opts Options) error {
	if f == nil {
		return fmt.Errorf("form: form is nil")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("form: field name is required")
	}
	if _, exists := f.Field(name); exists {
		return fmt.Errorf("form: field %q already added", name)
	}
	f.Fields = append(f.Fields, FieldDescriptor{Name: name, Type: typ, Options: opts})
	return nil
}

// Field returns the descriptor added under name.
func (f *Form) Field(name string) (FieldDescriptor, bool) {
	if f == nil {
		return FieldDescriptor{}, false
	}
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// Names returns field names in emission order.
func (f *Form) Names() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		out[i] = field.Name
	}
	return out
}

// Decorator enriches a form after assembly.
type Decorator interface {
	Decorate(*Form) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Form) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *Form) error {
	return fn(form)
}
