package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-settingsform/pkg/form"
	"github.com/goliatone/go-settingsform/pkg/settings"
)

const (
	documentVersion   = "3.0.3"
	defaultSchemaName = "Settings"
)

// DocumentOptions describe the standalone document produced by Document.
type DocumentOptions struct {
	Title      string
	Version    string
	SchemaName string
}

// Document wraps the schema of f in an OpenAPI document under
// components.schemas. The document is validated before it is returned.
func Document(ctx context.Context, f *form.Form, opts DocumentOptions) (*openapi3.T, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" && f != nil {
		title = f.Name
	}
	if title == "" {
		title = defaultSchemaName
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "1.0.0"
	}
	name := strings.TrimSpace(opts.SchemaName)
	if name == "" {
		name = defaultSchemaName
	}

	doc := &openapi3.T{
		OpenAPI: documentVersion,
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				name: openapi3.NewSchemaRef("", SchemaForForm(f)),
			},
		},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// ValidateData checks a settings record against a schema produced by
// SchemaFor. Values are normalised through JSON first so YAML-decoded
// integers and nested maps compare the way a JSON client would send them.
// Every violation is reported.
func ValidateData(schema *openapi3.Schema, data settings.Data) error {
	if schema == nil {
		return errors.New("openapi: schema is nil")
	}
	normalized, err := normalize(data)
	if err != nil {
		return err
	}
	if err := schema.VisitJSON(normalized, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: validate data: %w", err)
	}
	return nil
}

func normalize(data settings.Data) (any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(map[string]any(data))
	if err != nil {
		return nil, fmt.Errorf("openapi: encode data: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("openapi: decode data: %w", err)
	}
	return out, nil
}
