package form

import (
	"encoding/json"

	"github.com/goliatone/go-settingsform/pkg/constraint"
	"github.com/goliatone/go-settingsform/pkg/fieldtype"
)

// Option keys used when flattening Options into a host option bag.
const (
	OptionLabel             = "label"
	OptionTranslationDomain = "translation_domain"
	OptionChoices           = "choices"
	OptionConstraints       = "constraints"
)

// IsReservedOption reports whether key names one of the decorated options,
// which free-form extras must never shadow.
func IsReservedOption(key string) bool {
	switch key {
	case OptionLabel, OptionTranslationDomain, OptionChoices, OptionConstraints:
		return true
	}
	return false
}

// Choice is a selectable value paired with its display label (usually a
// translation key).
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options are the decorated field options handed to the host form builder.
type Options struct {
	Label             string                  `json:"label"`
	TranslationDomain string                  `json:"translationDomain"`
	Choices           []Choice                `json:"choices,omitempty"`
	Constraints       []constraint.Constraint `json:"-"`
	Extra             map[string]any          `json:"extra,omitempty"`
}

// ChoiceMap returns the choices keyed by value. Order is only preserved by
// the Choices slice itself.
func (o Options) ChoiceMap() map[string]string {
	if len(o.Choices) == 0 {
		return nil
	}
	out := make(map[string]string, len(o.Choices))
	for _, choice := range o.Choices {
		out[choice.Value] = choice.Label
	}
	return out
}

// Map flattens the options into a single key/value bag. Extra options are
// copied first so the decorated keys always win.
func (o Options) Map() map[string]any {
	out := make(map[string]any, len(o.Extra)+4)
	for key, value := range o.Extra {
		out[key] = value
	}
	out[OptionLabel] = o.Label
	out[OptionTranslationDomain] = o.TranslationDomain
	if choices := o.ChoiceMap(); len(choices) > 0 {
		out[OptionChoices] = choices
	} else {
		delete(out, OptionChoices)
	}
	if len(o.Constraints) > 0 {
		out[OptionConstraints] = append([]constraint.Constraint(nil), o.Constraints...)
	} else {
		delete(out, OptionConstraints)
	}
	return out
}

// MarshalJSON serialises constraints as kind/params descriptions.
func (o Options) MarshalJSON() ([]byte, error) {
	type alias Options
	payload := struct {
		alias
		Constraints []map[string]any `json:"constraints,omitempty"`
	}{alias: alias(o)}
	for _, c := range o.Constraints {
		payload.Constraints = append(payload.Constraints, constraint.Describe(c))
	}
	return json.Marshal(payload)
}

// FieldDescriptor is a single field emitted by the assembler.
type FieldDescriptor struct {
	Name    string       `json:"name"`
	Type    fieldtype.ID `json:"type"`
	Options Options      `json:"options"`
}

// Builder receives field descriptors in emission order.
type Builder interface {
	Add(name string, typ fieldtype.ID, opts Options) error
}

// BuilderFunc adapts a function into a Builder.
type BuilderFunc func(name string, typ fieldtype.ID, opts Options) error

// Add calls the underlying function.
func (fn BuilderFunc) Add(name string, typ fieldtype.ID, opts Options) error {
	return fn(name, typ, opts)
}
