package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-settingsform/pkg/assembler"
	"github.com/goliatone/go-settingsform/pkg/form"
	"github.com/goliatone/go-settingsform/pkg/settings"
)

const defaultFormName = "settings"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithAssembler injects a custom assembler.
func WithAssembler(a *assembler.Assembler) Option {
	return func(o *Orchestrator) {
		o.assembler = a
	}
}

// WithLogger injects the logger used for pipeline events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithDecorators registers decorators that run against the generated form
// after any transformer.
func WithDecorators(decorators ...form.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithTransformer registers a Transformer that can patch the form right after
// assembly.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithSchemaFS supplies the filesystem Request.SchemaPath is resolved
// against. Defaults to the working directory.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.schemaFS = fsys
	}
}

// WithFormName overrides the name given to generated forms.
func WithFormName(name string) Option {
	return func(o *Orchestrator) {
		o.formName = name
	}
}

// Orchestrator coordinates schema loading, assembly and decoration. Missing
// dependencies are initialised with the built-in implementations.
type Orchestrator struct {
	assembler   *assembler.Assembler
	logger      *zap.Logger
	decorators  []form.Decorator
	transformer Transformer
	schemaFS    fs.FS
	formName    string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.assembler == nil {
		o.assembler = assembler.New()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.schemaFS == nil {
		o.schemaFS = os.DirFS(".")
	}
	if strings.TrimSpace(o.formName) == "" {
		o.formName = defaultFormName
	}
	return o
}

// Request describes a single form generation.
type Request struct {
	// Schema is used as-is when set. Otherwise SchemaPath is loaded.
	Schema *settings.Schema

	// SchemaPath names a schema file, or a directory of schema files, inside
	// the configured schema filesystem.
	SchemaPath string

	// Data is the stored settings record. Only settings present here get a
	// field.
	Data settings.Data

	// Disabled lists settings that must not be rendered.
	Disabled settings.Disabled

	// FormName overrides the orchestrator's form name for this request.
	FormName string
}

// Generate loads the schema when needed, assembles the form, then applies the
// transformer and decorators. No form is returned when any stage fails.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*form.Form, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schema, err := o.resolveSchema(req)
	if err != nil {
		o.logger.Error("settings schema unavailable", zap.String("path", req.SchemaPath), zap.Error(err))
		return nil, err
	}

	name := strings.TrimSpace(req.FormName)
	if name == "" {
		name = o.formName
	}
	logger := o.logger.With(zap.String("form", name))
	logger.Debug("assembling settings form",
		zap.Int("settings", schema.Len()),
		zap.Int("values", len(req.Data)),
		zap.Int("disabled", len(req.Disabled)),
	)

	f := form.New(name)
	input := assembler.Input{Schema: schema, Disabled: req.Disabled, Data: req.Data}
	if err := o.assembler.Build(f, input); err != nil {
		logger.Error("settings form assembly failed", zap.Error(err))
		return nil, fmt.Errorf("orchestrator: assemble form: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.applyTransformer(ctx, f); err != nil {
		logger.Error("settings form transform failed", zap.Error(err))
		return nil, err
	}
	if err := o.applyDecorators(f); err != nil {
		logger.Error("settings form decoration failed", zap.Error(err))
		return nil, err
	}

	logger.Info("settings form generated", zap.Int("fields", len(f.Fields)))
	return f, nil
}

// Check loads the schema named by req and reports every problem it holds.
func (o *Orchestrator) Check(ctx context.Context, req Request) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	schema, err := o.resolveSchema(req)
	if err != nil {
		return err
	}
	if err := o.assembler.Check(schema); err != nil {
		o.logger.Warn("settings schema has problems", zap.Int("settings", schema.Len()), zap.Error(err))
		return err
	}
	o.logger.Debug("settings schema is valid", zap.Int("settings", schema.Len()))
	return nil
}

func (o *Orchestrator) resolveSchema(req Request) (settings.Schema, error) {
	if req.Schema != nil {
		return *req.Schema, nil
	}
	target := strings.TrimSpace(req.SchemaPath)
	if target == "" {
		return settings.Schema{}, errors.New("orchestrator: schema or schema path is required")
	}
	target = path.Clean(target)

	info, err := fs.Stat(o.schemaFS, target)
	if err != nil {
		return settings.Schema{}, fmt.Errorf("orchestrator: load schema: %w", err)
	}
	if info.IsDir() {
		sub, err := fs.Sub(o.schemaFS, target)
		if err != nil {
			return settings.Schema{}, fmt.Errorf("orchestrator: load schema: %w", err)
		}
		schema, err := settings.LoadDir(sub)
		if err != nil {
			return settings.Schema{}, fmt.Errorf("orchestrator: load schema: %w", err)
		}
		return schema, nil
	}
	schema, err := settings.LoadFS(o.schemaFS, target)
	if err != nil {
		return settings.Schema{}, fmt.Errorf("orchestrator: load schema: %w", err)
	}
	return schema, nil
}

func (o *Orchestrator) applyDecorators(f *form.Form) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(f); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, f *form.Form) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, f); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}
