package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-settingsform/pkg/settings"
)

// MustLoadSchema reads a settings schema fixture from disk.
func MustLoadSchema(t *testing.T, path string) settings.Schema {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read schema fixture: %v", err)
	}
	schema, err := settings.Parse(data, path)
	if err != nil {
		t.Fatalf("parse schema fixture: %v", err)
	}
	return schema
}

// MustLoadData reads a stored settings record fixture from disk.
func MustLoadData(t *testing.T, path string) settings.Data {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read data fixture: %v", err)
	}
	data, err := settings.LoadData(raw)
	if err != nil {
		t.Fatalf("parse data fixture: %v", err)
	}
	return data
}

// MarshalGolden encodes value the way golden files are stored.
func MarshalGolden(t *testing.T, value any) []byte {
	t.Helper()

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	return append(payload, '\n')
}

// UpdateGoldensEnv names the environment variable that makes golden
// assertions rewrite their files instead of comparing.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// AssertGoldenJSON compares the JSON encoding of value against the golden
// file at path. Both sides are decoded first, so only semantic differences
// fail the test.
func AssertGoldenJSON(t *testing.T, path string, value any) {
	t.Helper()

	payload := MarshalGolden(t, value)
	if os.Getenv(UpdateGoldensEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s (set %s=1 to create it): %v", path, UpdateGoldensEnv, err)
	}
	var want, got any
	if err := json.Unmarshal(raw, &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
