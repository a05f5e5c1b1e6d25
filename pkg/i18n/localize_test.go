package i18n

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-settingsform/pkg/fieldtype"
	"github.com/goliatone/go-settingsform/pkg/form"
)

const catalogYAML = `
en:
  settings:
    labels:
      theme: Theme
      theme_choices:
        dark: Dark
        light: Light
es:
  settings:
    labels:
      theme: Tema
      theme_choices:
        dark: Oscuro
      discount: "Descuento (%)"
`

func themeDescriptor() form.FieldDescriptor {
	return form.FieldDescriptor{
		Name: "theme",
		Type: fieldtype.Choice,
		Options: form.Options{
			Label:             "labels.theme",
			TranslationDomain: "settings",
			Choices: []form.Choice{
				{Value: "dark", Label: "labels.theme_choices.dark"},
				{Value: "light", Label: "labels.theme_choices.light"},
			},
		},
	}
}

func TestLocalize_TranslatesLabelsAndChoices(t *testing.T) {
	cat, err := LoadCatalog([]byte(catalogYAML))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	input := []form.FieldDescriptor{themeDescriptor()}
	got := Localize(input, Options{Locale: "es-MX", Translator: cat})

	want := form.FieldDescriptor{
		Name: "theme",
		Type: fieldtype.Choice,
		Options: form.Options{
			Label:             "Tema",
			TranslationDomain: "settings",
			Choices: []form.Choice{
				{Value: "dark", Label: "Oscuro"},
				{Value: "light", Label: "labels.theme_choices.light"},
			},
		},
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("localized descriptor mismatch (-want +got):\n%s", diff)
	}
	if input[0].Options.Label != "labels.theme" || input[0].Options.Choices[0].Label != "labels.theme_choices.dark" {
		t.Fatalf("input descriptors were modified: %+v", input[0])
	}
}

func TestLocalize_MissingHandler(t *testing.T) {
	var seen []error
	got := Localize([]form.FieldDescriptor{themeDescriptor()}, Options{
		Locale: "fr",
		OnMissing: func(_, _, key string, err error) string {
			seen = append(seen, err)
			return "!" + key
		},
	})
	if got[0].Options.Label != "!labels.theme" {
		t.Fatalf("unexpected label %q", got[0].Options.Label)
	}
	if len(seen) != 3 || !errors.Is(seen[0], ErrMissingTranslator) {
		t.Fatalf("expected missing translator errors, got %v", seen)
	}
}

func TestLocalizeForm(t *testing.T) {
	f := form.New("settings")
	d := themeDescriptor()
	if err := f.Add(d.Name, d.Type, d.Options); err != nil {
		t.Fatalf("add: %v", err)
	}
	translator := TranslatorFunc(func(_, domain, key string) (string, error) {
		return domain + ":" + key, nil
	})
	LocalizeForm(f, Options{Locale: "en", Translator: translator})
	if got := f.Fields[0].Options.Label; got != "settings:labels.theme" {
		t.Fatalf("unexpected label %q", got)
	}
	LocalizeForm(nil, Options{})
}

func TestCatalog_TranslateFallbackAndEscaping(t *testing.T) {
	cat, err := LoadCatalog([]byte(catalogYAML))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	cases := []struct {
		locale, key, want string
	}{
		{"en", "labels.theme", "Theme"},
		{"en-GB", "labels.theme_choices.light", "Light"},
		{"es", "labels.discount", "Descuento (%)"},
	}
	for _, tc := range cases {
		got, err := cat.Translate(tc.locale, "settings", tc.key)
		if err != nil {
			t.Fatalf("translate %s %s: %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("translate %s %s: want %q, got %q", tc.locale, tc.key, tc.want, got)
		}
	}

	if _, err := cat.Translate("es", "other", "labels.theme"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation for unknown domain, got %v", err)
	}
	if _, err := cat.Translate("not a locale!", "settings", "labels.theme"); err == nil {
		t.Fatalf("expected error for malformed locale")
	}
	if diff := cmp.Diff([]string{"en", "es"}, cat.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCatalogFS(t *testing.T) {
	fsys := fstest.MapFS{"i18n.yaml": {Data: []byte(catalogYAML)}}
	cat, err := LoadCatalogFS(fsys, "i18n.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := cat.Translate("es", "settings", "labels.theme"); got != "Tema" {
		t.Fatalf("unexpected translation %q", got)
	}
	if _, err := LoadCatalogFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected read error")
	}
	if _, err := LoadCatalog([]byte("en: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}
