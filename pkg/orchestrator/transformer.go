package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-settingsform/pkg/form"
	"github.com/goliatone/go-settingsform/pkg/settings"
)

// Transformer mutates a form after assembly and before decorators run.
type Transformer interface {
	Transform(ctx context.Context, f *form.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, f *form.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, f *form.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, f)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document:
//
//	metadata:
//	  layout.section: general
//	fields:
//	  theme:
//	    extra:
//	      help: labels.theme_help
//
// Patches for fields missing from the form are skipped, since a form only
// carries the settings that hold a stored value. Presets only add free-form
// extras: the label key, translation domain, choices and constraints stay as
// assembled, and extras named after them are dropped.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Metadata map[string]string      `yaml:"metadata"`
	Fields   map[string]presetPatch `yaml:"fields"`
}

type presetPatch struct {
	Extra map[string]any `yaml:"extra"`
}

// NewPresetTransformer constructs a transformer from raw bytes. Unknown keys
// are rejected.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	decoder := yaml.NewDecoder(bytes.NewReader(settings.NormaliseJSON(trimmed)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto f.
func (t *PresetTransformer) Transform(ctx context.Context, f *form.Form) error {
	if f == nil {
		return errors.New("preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(t.document.Metadata) > 0 {
		f.Metadata = mergeStringMap(f.Metadata, t.document.Metadata)
	}
	for idx := range f.Fields {
		patch, ok := t.document.Fields[f.Fields[idx].Name]
		if !ok {
			continue
		}
		applyFieldPatch(&f.Fields[idx], patch)
	}
	return nil
}

func applyFieldPatch(field *form.FieldDescriptor, patch presetPatch) {
	if len(patch.Extra) == 0 {
		return
	}
	extra := make(map[string]any, len(field.Options.Extra)+len(patch.Extra))
	for key, value := range field.Options.Extra {
		extra[key] = value
	}
	for key, value := range patch.Extra {
		if form.IsReservedOption(key) {
			continue
		}
		extra[key] = value
	}
	if len(extra) == 0 {
		return
	}
	field.Options.Extra = extra
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
