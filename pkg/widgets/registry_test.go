package widgets

import (
	"testing"

	"github.com/goliatone/go-settingsform/pkg/fieldtype"
	"github.com/goliatone/go-settingsform/pkg/form"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := form.FieldDescriptor{
		Type: fieldtype.Checkbox,
		Options: form.Options{
			Extra: map[string]any{"widget": "custom-toggle"},
		},
	}

	if got, ok := reg.Resolve(field); !ok || got != "custom-toggle" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  form.FieldDescriptor
		expect string
	}{
		{
			name:   "checkbox toggle",
			field:  form.FieldDescriptor{Type: fieldtype.Checkbox},
			expect: WidgetToggle,
		},
		{
			name:   "locale select",
			field:  form.FieldDescriptor{Type: fieldtype.Locale},
			expect: WidgetSelect,
		},
		{
			name: "text with choices select",
			field: form.FieldDescriptor{
				Type:    fieldtype.Text,
				Options: form.Options{Choices: []form.Choice{{Value: "a", Label: "labels.x_choices.a"}}},
			},
			expect: WidgetSelect,
		},
		{
			name:   "textarea",
			field:  form.FieldDescriptor{Type: fieldtype.Textarea},
			expect: WidgetTextarea,
		},
		{
			name:   "date picker",
			field:  form.FieldDescriptor{Type: fieldtype.DateTime},
			expect: WidgetDatePicker,
		},
		{
			name:   "number",
			field:  form.FieldDescriptor{Type: fieldtype.Percent},
			expect: WidgetNumber,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_NoMatch(t *testing.T) {
	if got, ok := NewRegistry().Resolve(form.FieldDescriptor{Type: fieldtype.Text}); ok {
		t.Fatalf("plain text should not resolve a widget, got %q", got)
	}
	if _, ok := NewEmptyRegistry().Resolve(form.FieldDescriptor{Type: fieldtype.Checkbox}); ok {
		t.Fatalf("empty registry should not resolve")
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("switch", 999, func(field form.FieldDescriptor) bool {
		return field.Type == fieldtype.Checkbox
	})

	got, ok := reg.Resolve(form.FieldDescriptor{Type: fieldtype.Checkbox})
	if !ok || got != "switch" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestRegister_ReplacesExistingName(t *testing.T) {
	reg := NewRegistry()
	reg.Register(WidgetSelect, 10, typeIn(fieldtype.Choice))
	reg.Register("radio-group", 20, typeIn(fieldtype.Choice))

	got, ok := reg.Resolve(form.FieldDescriptor{Type: fieldtype.Choice})
	if !ok || got != "radio-group" {
		t.Fatalf("re-registered select should rank below radio-group, got %q (ok=%v)", got, ok)
	}
	if got, _ := reg.Resolve(form.FieldDescriptor{Type: fieldtype.Locale}); got == WidgetSelect {
		t.Fatalf("replaced select matcher should no longer match locale fields")
	}
}

func TestRegister_EqualPriorityKeepsRegistrationOrder(t *testing.T) {
	reg := NewEmptyRegistry()
	always := func(form.FieldDescriptor) bool { return true }
	reg.Register("first", 5, always)
	reg.Register("second", 5, always)
	reg.Register("low", 1, always)

	if got, _ := reg.Resolve(form.FieldDescriptor{Type: fieldtype.Text}); got != "first" {
		t.Fatalf("expected first registration to win a tie, got %q", got)
	}
}

func TestResolve_IgnoresNonStringHint(t *testing.T) {
	field := form.FieldDescriptor{
		Type:    fieldtype.Checkbox,
		Options: form.Options{Extra: map[string]any{ExtraKey: 42}},
	}
	if got, _ := NewRegistry().Resolve(field); got != WidgetToggle {
		t.Fatalf("expected matcher result for non-string hint, got %q", got)
	}
}

func TestDecorator_AppliesWidgetExtra(t *testing.T) {
	reg := NewRegistry()

	f := form.New("settings")
	shared := map[string]any{"help": "labels.newsletter_help"}
	mustAdd(t, f, "newsletter", fieldtype.Checkbox, form.Options{Label: "labels.newsletter", Extra: shared})
	mustAdd(t, f, "nickname", fieldtype.Text, form.Options{Label: "labels.nickname"})

	if err := reg.Decorate(f); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	newsletter, _ := f.Field("newsletter")
	if newsletter.Options.Extra[ExtraKey] != WidgetToggle {
		t.Fatalf("newsletter widget not applied: %v", newsletter.Options.Extra)
	}
	if newsletter.Options.Extra["help"] != "labels.newsletter_help" {
		t.Fatalf("existing extras lost: %v", newsletter.Options.Extra)
	}
	if _, leaked := shared[ExtraKey]; leaked {
		t.Fatalf("decorate mutated the caller's extra map")
	}

	nickname, _ := f.Field("nickname")
	if _, ok := nickname.Options.Extra[ExtraKey]; ok {
		t.Fatalf("nickname should not get a widget: %v", nickname.Options.Extra)
	}
}

func mustAdd(t *testing.T, f *form.Form, name string, typ fieldtype.ID, opts form.Options) {
	t.Helper()
	if err := f.Add(name, typ, opts); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
}
