package settingsform

import (
	"context"

	"github.com/goliatone/go-settingsform/pkg/form"
	"github.com/goliatone/go-settingsform/pkg/orchestrator"
	"github.com/goliatone/go-settingsform/pkg/settings"
	"github.com/goliatone/go-settingsform/pkg/widgets"
)

// Form is the assembled form handed back to callers.
type Form = form.Form

// FieldDescriptor aliases form.FieldDescriptor for callers that only import
// the root package.
type FieldDescriptor = form.FieldDescriptor

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module. The built-in widget hints are applied before any caller supplied
// decorators.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	defaults := []orchestrator.Option{orchestrator.WithDecorators(widgets.NewRegistry())}
	return orchestrator.New(append(defaults, options...)...)
}

// Generate assembles a form for schema and the stored record data, leaving
// out the disabled settings. It is the simplest entry point for callers that
// already hold a parsed schema.
func Generate(ctx context.Context, schema settings.Schema, data settings.Data, disabled []string, options ...orchestrator.Option) (*Form, error) {
	return NewOrchestrator(options...).Generate(ctx, orchestrator.Request{
		Schema:   &schema,
		Data:     data,
		Disabled: settings.NewDisabled(disabled...),
	})
}

// GenerateFromFile loads the schema at path (relative to the configured
// schema filesystem, the working directory by default) before generating.
func GenerateFromFile(ctx context.Context, path string, data settings.Data, disabled []string, options ...orchestrator.Option) (*Form, error) {
	return NewOrchestrator(options...).Generate(ctx, orchestrator.Request{
		SchemaPath: path,
		Data:       data,
		Disabled:   settings.NewDisabled(disabled...),
	})
}
