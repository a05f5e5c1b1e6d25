package settings

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoadFS_YAMLPreservesOrder(t *testing.T) {
	schema, err := LoadFS(os.DirFS("testdata"), "settings.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"theme", "nickname", "locale", "newsletter"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	theme, ok := schema.Get("theme")
	if !ok {
		t.Fatalf("theme not loaded")
	}
	want := Definition{
		Name: "theme",
		Type: "choice",
		Options: ValidationOptions{
			Choices: []string{"light", "dark"},
			Constraints: []ConstraintSpec{
				{Kind: "NotBlank", Params: map[string]any{}},
				{Kind: "Choice", Params: map[string]any{"value": []any{"light", "dark"}}},
			},
			Extra: map[string]any{"required": true},
		},
	}
	if diff := cmp.Diff(want, theme); diff != "" {
		t.Fatalf("theme mismatch (-want +got):\n%s", diff)
	}

	nickname, _ := schema.Get("nickname")
	kinds := make([]string, 0, len(nickname.Options.Constraints))
	for _, spec := range nickname.Options.Constraints {
		kinds = append(kinds, spec.Kind)
	}
	if diff := cmp.Diff([]string{"Length", "Regex"}, kinds); diff != "" {
		t.Fatalf("constraint order mismatch (-want +got):\n%s", diff)
	}
	if nickname.Options.Extra["label"] != "Ignored label" {
		t.Fatalf("expected free-form option to be kept, got %v", nickname.Options.Extra)
	}

	newsletter, _ := schema.Get("newsletter")
	if newsletter.Type != DefaultType {
		t.Fatalf("expected default type %q, got %q", DefaultType, newsletter.Type)
	}
}

func TestLoadFS_JSONWithTabs(t *testing.T) {
	schema, err := LoadFS(os.DirFS("testdata"), "settings.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha"}, schema.Names()); diff != "" {
		t.Fatalf("json order mismatch (-want +got):\n%s", diff)
	}
	zeta, _ := schema.Get("zeta")
	want := []ConstraintSpec{
		{Kind: "Range", Params: map[string]any{"min": 1}},
		{Kind: "Positive", Params: map[string]any{}},
	}
	if diff := cmp.Diff(want, zeta.Options.Constraints); diff != "" {
		t.Fatalf("constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDir_MergesInPathOrder(t *testing.T) {
	schema, err := LoadDir(os.DirFS("testdata/dir"))
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if diff := cmp.Diff([]string{"timezone", "page_size"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	pageSize, _ := schema.Get("page_size")
	if len(pageSize.Options.Constraints) != 2 {
		t.Fatalf("expected repeated constraint kinds from list form, got %v", pageSize.Options.Constraints)
	}
}

func TestLoadDir_RejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("settings:\n  theme: ~\n")},
		"b.yaml": {Data: []byte("settings:\n  theme: ~\n")},
	}
	_, err := LoadDir(fsys)
	if err == nil || !strings.Contains(err.Error(), `duplicate setting "theme"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":              "   ",
		"invalid":            "settings: [",
		"root list":          "- a\n- b\n",
		"settings list":      "settings: [a, b]\n",
		"choices mapping":    "settings:\n  a:\n    validation:\n      options:\n        choices: {x: y}\n",
		"constraints scalar": "settings:\n  a:\n    validation:\n      options:\n        constraints: NotBlank\n",
		"constraints pair":   "settings:\n  a:\n    validation:\n      options:\n        constraints:\n          - {NotBlank: ~, Length: 2}\n",
		"type mapping":       "settings:\n  a:\n    validation:\n      type: {x: y}\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc), name); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestParse_NoSettingsKey(t *testing.T) {
	schema, err := Parse([]byte("other: true\n"), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if schema.Len() != 0 {
		t.Fatalf("expected empty schema, got %v", schema.Names())
	}
}

func TestLoadData(t *testing.T) {
	data, err := LoadData([]byte("{\n\t\"locale\": \"en\",\n\t\"page_size\": 20\n}"))
	if err != nil {
		t.Fatalf("load data: %v", err)
	}
	want := Data{"locale": "en", "page_size": 20}
	if diff := cmp.Diff(want, data, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	empty, err := LoadData(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty data, got %v (%v)", empty, err)
	}
}
