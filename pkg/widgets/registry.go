package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-settingsform/pkg/fieldtype"
	"github.com/goliatone/go-settingsform/pkg/form"
)

// ExtraKey is the option key carrying the resolved widget name.
const ExtraKey = "widget"

// Built-in widget identifiers exposed by the registry.
const (
	WidgetToggle     = "toggle"
	WidgetSelect     = "select"
	WidgetTextarea   = "textarea"
	WidgetDatePicker = "datepicker"
	WidgetNumber     = "number"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field form.FieldDescriptor) bool

type rule struct {
	name     string
	priority int
	match    Matcher
}

// Registry picks a widget hint per settings field. Rules are kept ordered by
// descending priority, equal priorities in registration order, so resolution
// is a single scan. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without matchers.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a matcher under name. Registering a name that already exists
// replaces its rule, so hosts can retune a built-in (for example move
// "select" below their own matcher) without rebuilding the registry. Blank
// names and nil matchers are ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, existing := range r.rules {
		if existing.name == name {
			r.rules = append(r.rules[:idx], r.rules[idx+1:]...)
			break
		}
	}
	at := sort.Search(len(r.rules), func(i int) bool {
		return r.rules[i].priority < priority
	})
	r.rules = append(r.rules, rule{})
	copy(r.rules[at+1:], r.rules[at:])
	r.rules[at] = rule{name: name, priority: priority, match: matcher}
}

// Resolve returns the widget for a field. A non-blank string already stored
// under Extra["widget"] (from the schema options or a preset) is kept as is.
func (r *Registry) Resolve(field form.FieldDescriptor) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements form.Decorator. Every resolved widget is written to
// Options.Extra["widget"]; fields without a match are left alone.
func (r *Registry) Decorate(f *form.Form) error {
	if r == nil || f == nil {
		return nil
	}
	for idx, field := range f.Fields {
		widget, ok := r.Resolve(field)
		if !ok || widget == "" {
			continue
		}
		extra := make(map[string]any, len(field.Options.Extra)+1)
		for key, value := range field.Options.Extra {
			extra[key] = value
		}
		extra[ExtraKey] = widget
		field.Options.Extra = extra
		f.Fields[idx] = field
	}
	return nil
}

func explicitWidget(field form.FieldDescriptor) string {
	name, _ := field.Options.Extra[ExtraKey].(string)
	return strings.TrimSpace(name)
}

func typeIn(ids ...fieldtype.ID) Matcher {
	return func(field form.FieldDescriptor) bool {
		for _, id := range ids {
			if field.Type == id {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, typeIn(fieldtype.Checkbox))

	r.Register(WidgetSelect, 80, func(field form.FieldDescriptor) bool {
		if len(field.Options.Choices) > 0 {
			return true
		}
		return typeIn(
			fieldtype.Choice,
			fieldtype.Country,
			fieldtype.Currency,
			fieldtype.Language,
			fieldtype.Locale,
			fieldtype.Timezone,
		)(field)
	})

	r.Register(WidgetTextarea, 70, typeIn(fieldtype.Textarea))

	r.Register(WidgetDatePicker, 60, typeIn(
		fieldtype.Date,
		fieldtype.DateTime,
		fieldtype.Birthday,
		fieldtype.Time,
	))

	r.Register(WidgetNumber, 50, typeIn(
		fieldtype.Integer,
		fieldtype.Number,
		fieldtype.Money,
		fieldtype.Percent,
		fieldtype.Range,
	))
}
