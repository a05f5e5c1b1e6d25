package assembler

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-settingsform/pkg/fieldtype"
	"github.com/goliatone/go-settingsform/pkg/settings"
)

func TestCheck_CleanSchema(t *testing.T) {
	schema := settings.MustSchema(
		settings.Definition{Name: "locale", Type: "locale"},
		settings.Definition{Name: "name", Type: "text", Options: settings.ValidationOptions{
			Constraints: []settings.ConstraintSpec{{Kind: "NotBlank"}, {Kind: "Length", Params: map[string]any{"max": 10}}},
		}},
	)
	if err := New().Check(schema); err != nil {
		t.Fatalf("expected clean schema, got %v", err)
	}
}

func TestCheck_ReportsEveryProblem(t *testing.T) {
	schema := settings.MustSchema(
		settings.Definition{Name: "colour", Type: "colour"},
		settings.Definition{Name: "code", Type: "text", Options: settings.ValidationOptions{
			Constraints: []settings.ConstraintSpec{{Kind: "Missing"}, {Kind: "Length"}},
		}},
	)

	err := New().Check(schema)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected multierror, got %T %v", err, err)
	}
	if len(merr.Errors) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(merr.Errors), merr.Errors)
	}

	var first *SettingError
	if !errors.As(merr.Errors[0], &first) || first.Setting != "colour" {
		t.Fatalf("unexpected first problem %v", merr.Errors[0])
	}
	var unknown *fieldtype.UnknownTypeError
	if !errors.As(merr.Errors[0], &unknown) {
		t.Fatalf("expected wrapped UnknownTypeError, got %v", merr.Errors[0])
	}
	var notFound *ConstraintClassNotFoundError
	if !errors.As(merr.Errors[1], &notFound) || notFound.Kind != "Missing" {
		t.Fatalf("expected wrapped ConstraintClassNotFoundError, got %v", merr.Errors[1])
	}
}
