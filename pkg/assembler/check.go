package assembler

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-settingsform/pkg/settings"
)

// SettingError ties a schema problem to the setting that caused it.
type SettingError struct {
	Setting string
	Err     error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %q: %v", e.Setting, e.Err)
}

func (e *SettingError) Unwrap() error { return e.Err }

// Check resolves every type and constraint declared in schema, ignoring the
// inclusion filter, and reports all problems at once. It returns nil for a
// schema Assemble can always process. The error is a *multierror.Error whose
// entries are *SettingError values.
func (a *Assembler) Check(schema settings.Schema) error {
	var result *multierror.Error
	for _, def := range schema.Definitions() {
		if _, err := a.types.Resolve(def.Type); err != nil {
			result = multierror.Append(result, &SettingError{Setting: def.Name, Err: err})
		}
		for _, spec := range def.Options.Constraints {
			if !a.constraints.CanResolve(spec.Kind) {
				result = multierror.Append(result, &SettingError{
					Setting: def.Name,
					Err:     &ConstraintClassNotFoundError{Kind: spec.Kind},
				})
				continue
			}
			if _, err := a.constraints.Construct(spec.Kind, cloneParams(spec.Params)); err != nil {
				result = multierror.Append(result, &SettingError{Setting: def.Name, Err: err})
			}
		}
	}
	return result.ErrorOrNil()
}
