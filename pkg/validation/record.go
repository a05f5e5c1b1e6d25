package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-settingsform/pkg/constraint"
	"github.com/goliatone/go-settingsform/pkg/form"
	"github.com/goliatone/go-settingsform/pkg/openapi"
	"github.com/goliatone/go-settingsform/pkg/settings"
)

// KindChoices marks values outside a field's declared choices.
const KindChoices = "choices"

// Issue is a single validation failure for one setting.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes for a settings record.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// ValidateRecord runs every field's constraints and choice list against the
// stored value of that field. Fields appear in form order; a field's issues
// keep the order of its constraints.
func ValidateRecord(descriptors []form.FieldDescriptor, data settings.Data) Result {
	result := Result{Valid: true}
	for _, descriptor := range descriptors {
		value := data[descriptor.Name]
		for _, c := range descriptor.Options.Constraints {
			if c == nil {
				continue
			}
			if err := c.Validate(value); err != nil {
				result.add(issueFromViolation(descriptor.Name, err))
			}
		}
		if issue, ok := checkChoices(descriptor, value); !ok {
			result.add(issue)
		}
	}
	return result
}

// ValidateForm is ValidateRecord over the fields of f.
func ValidateForm(f *form.Form, data settings.Data) Result {
	if f == nil {
		return Result{Valid: true}
	}
	return ValidateRecord(f.Fields, data)
}

// ValidateSchema checks data against the OpenAPI schema exported for
// descriptors and converts every schema error into an Issue.
func ValidateSchema(descriptors []form.FieldDescriptor, data settings.Data) Result {
	result := Result{Valid: true}
	err := openapi.ValidateData(openapi.SchemaFor(descriptors), data)
	if err == nil {
		return result
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			result.add(issueFromSchemaError(item))
		}
		return result
	}
	result.add(issueFromSchemaError(err))
	return result
}

func (r *Result) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

func issueFromViolation(field string, err error) Issue {
	var violation *constraint.Violation
	if errors.As(err, &violation) {
		return Issue{Field: field, Kind: violation.Kind, Message: violation.Message}
	}
	return Issue{Field: field, Message: strings.TrimSpace(err.Error())}
}

func issueFromSchemaError(err error) Issue {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return Issue{Message: strings.TrimSpace(err.Error())}
	}
	return Issue{
		Field:   fieldPath(schemaErr.JSONPointer()),
		Kind:    schemaErr.SchemaField,
		Message: strings.TrimSpace(schemaErr.Reason),
	}
}

func fieldPath(pointer []string) string {
	out := make([]string, 0, len(pointer))
	for _, segment := range pointer {
		if segment = strings.TrimSpace(segment); segment != "" {
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

func checkChoices(descriptor form.FieldDescriptor, value any) (Issue, bool) {
	if len(descriptor.Options.Choices) == 0 || value == nil {
		return Issue{}, true
	}
	allowed := descriptor.Options.ChoiceMap()

	var values []any
	switch v := value.(type) {
	case []any:
		values = v
	case []string:
		for _, s := range v {
			values = append(values, s)
		}
	case string:
		if v == "" {
			return Issue{}, true
		}
		values = []any{v}
	default:
		values = []any{v}
	}

	for _, candidate := range values {
		key := fmt.Sprint(candidate)
		if _, ok := allowed[key]; !ok {
			return Issue{
				Field:   descriptor.Name,
				Kind:    KindChoices,
				Message: fmt.Sprintf("The value %q is not a valid choice.", key),
			}, false
		}
	}
	return Issue{}, true
}
