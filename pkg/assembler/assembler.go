package assembler

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-settingsform/pkg/constraint"
	"github.com/goliatone/go-settingsform/pkg/fieldtype"
	"github.com/goliatone/go-settingsform/pkg/form"
	"github.com/goliatone/go-settingsform/pkg/settings"
)

// Translation namespace applied to every emitted field.
const (
	LabelPrefix       = "labels."
	ChoicesInfix      = "_choices."
	TranslationDomain = "settings"
)

// TypeResolver maps a validation type token to a concrete field type.
type TypeResolver interface {
	Resolve(token string) (fieldtype.ID, error)
}

// ConstraintRegistry resolves and constructs constraint kinds.
type ConstraintRegistry interface {
	CanResolve(kind string) bool
	Construct(kind string, params map[string]any) (constraint.Constraint, error)
}

// ConstraintClassNotFoundError reports a constraint kind the registry cannot
// construct.
type ConstraintClassNotFoundError struct {
	Kind string
}

func (e *ConstraintClassNotFoundError) Error() string {
	return fmt.Sprintf("constraint class %q not found", e.Kind)
}

// Input carries the per-call assembly inputs. None of them are retained.
type Input struct {
	Schema   settings.Schema
	Disabled settings.Disabled
	Data     settings.Data
}

// Option customises the assembler configuration.
type Option func(*Assembler)

// WithTypeResolver injects the field type resolver.
func WithTypeResolver(resolver TypeResolver) Option {
	return func(a *Assembler) {
		a.types = resolver
	}
}

// WithConstraints injects the constraint registry.
func WithConstraints(registry ConstraintRegistry) Option {
	return func(a *Assembler) {
		a.constraints = registry
	}
}

// Assembler turns a settings schema into field descriptors. It holds no
// per-call state and is safe for concurrent use when its collaborators are.
type Assembler struct {
	types       TypeResolver
	constraints ConstraintRegistry
}

// New constructs an Assembler. Missing collaborators default to a resolver
// for the core field types and the built-in constraint registry.
func New(options ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	if a.types == nil {
		a.types = fieldtype.NewResolver(nil)
	}
	if a.constraints == nil {
		a.constraints = constraint.NewRegistry()
	}
	return a
}

// Assemble emits one descriptor per setting present in input.Data and absent
// from input.Disabled, in schema order. The first failure aborts the whole
// call and no descriptors are returned.
func (a *Assembler) Assemble(input Input) ([]form.FieldDescriptor, error) {
	descriptors := make([]form.FieldDescriptor, 0, input.Schema.Len())
	for _, def := range input.Schema.Definitions() {
		if !input.Data.Has(def.Name) || input.Disabled.Has(def.Name) {
			continue
		}
		descriptor, err := a.describe(def)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

// Build assembles input and hands every descriptor to builder. The builder is
// only called once assembly has fully succeeded.
func (a *Assembler) Build(builder form.Builder, input Input) error {
	if builder == nil {
		return fmt.Errorf("assembler: builder is nil")
	}
	descriptors, err := a.Assemble(input)
	if err != nil {
		return err
	}
	for _, d := range descriptors {
		if err := builder.Add(d.Name, d.Type, d.Options); err != nil {
			return fmt.Errorf("assembler: add field %q: %w", d.Name, err)
		}
	}
	return nil
}

func (a *Assembler) describe(def settings.Definition) (form.FieldDescriptor, error) {
	typ, err := a.types.Resolve(def.Type)
	if err != nil {
		return form.FieldDescriptor{}, err
	}

	constraints, err := a.materialize(def.Name, def.Options.Constraints)
	if err != nil {
		return form.FieldDescriptor{}, err
	}

	label := LabelKey(def.Name)
	opts := form.Options{
		Label:             label,
		TranslationDomain: TranslationDomain,
		Choices:           choices(label, def.Options.Choices),
		Constraints:       constraints,
		Extra:             extras(def.Options.Extra),
	}
	return form.FieldDescriptor{Name: def.Name, Type: typ, Options: opts}, nil
}

func (a *Assembler) materialize(name string, specs []settings.ConstraintSpec) ([]constraint.Constraint, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]constraint.Constraint, 0, len(specs))
	for _, spec := range specs {
		if !a.constraints.CanResolve(spec.Kind) {
			return nil, &ConstraintClassNotFoundError{Kind: spec.Kind}
		}
		c, err := a.constraints.Construct(spec.Kind, cloneParams(spec.Params))
		var notFound *constraint.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &ConstraintClassNotFoundError{Kind: spec.Kind}
		}
		if err != nil {
			return nil, fmt.Errorf("assembler: setting %q: %w", name, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// LabelKey returns the translation key used as the label of a setting.
func LabelKey(name string) string {
	return LabelPrefix + name
}

// ChoiceKey returns the translation key of a choice, namespaced under the
// field's label key.
func ChoiceKey(labelKey, choice string) string {
	return labelKey + ChoicesInfix + choice
}

func choices(label string, raw []string) []form.Choice {
	if len(raw) == 0 {
		return nil
	}
	out := make([]form.Choice, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for _, value := range raw {
		choice := form.Choice{Value: value, Label: ChoiceKey(label, value)}
		if idx, dup := seen[value]; dup {
			out[idx] = choice
			continue
		}
		seen[value] = len(out)
		out = append(out, choice)
	}
	return out
}

// extras copies the free-form options, dropping keys the decorated options
// own.
func extras(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		if form.IsReservedOption(key) {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneParams(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
