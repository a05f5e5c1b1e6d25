package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustLoadSchema_KeepsDocumentOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := "settings:\n  theme:\n    validation:\n      type: choice\n  locale:\n    validation:\n      type: locale\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	schema := MustLoadSchema(t, path)
	if got := schema.Names(); len(got) != 2 || got[0] != "theme" || got[1] != "locale" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestAssertGoldenJSON_WritesThenCompares(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "form.golden.json")
	value := map[string]any{"name": "settings", "fields": []any{"theme"}}

	t.Setenv(UpdateGoldensEnv, "1")
	AssertGoldenJSON(t, path, value)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("golden not written: %v", err)
	}

	t.Setenv(UpdateGoldensEnv, "")
	if err := os.WriteFile(path, []byte(`{"fields": ["theme"], "name": "settings"}`), 0o644); err != nil {
		t.Fatalf("rewrite golden: %v", err)
	}
	AssertGoldenJSON(t, path, value)
}
