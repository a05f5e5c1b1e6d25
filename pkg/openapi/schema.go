package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-settingsform/pkg/constraint"
	"github.com/goliatone/go-settingsform/pkg/fieldtype"
	"github.com/goliatone/go-settingsform/pkg/form"
)

// Extension keys attached to every exported property.
const (
	ExtensionFieldType = "x-settings-type"
	ExtensionLabel     = "x-settings-label"
)

// SchemaFor builds an object schema with one property per descriptor.
// Constraints that have a JSON Schema equivalent are translated; the rest
// are only enforced by the form layer.
func SchemaFor(descriptors []form.FieldDescriptor) *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	for _, descriptor := range descriptors {
		property, required := propertyFor(descriptor)
		root.WithProperty(descriptor.Name, property)
		if required {
			root.Required = append(root.Required, descriptor.Name)
		}
	}
	return root
}

// SchemaForForm is SchemaFor over the fields of f.
func SchemaForForm(f *form.Form) *openapi3.Schema {
	if f == nil {
		return openapi3.NewObjectSchema()
	}
	return SchemaFor(f.Fields)
}

func propertyFor(descriptor form.FieldDescriptor) (*openapi3.Schema, bool) {
	schema := baseSchema(descriptor.Type)
	target := schema

	if len(descriptor.Options.Choices) > 0 && isString(schema) {
		values := make([]any, len(descriptor.Options.Choices))
		for i, choice := range descriptor.Options.Choices {
			values[i] = choice.Value
		}
		if multiple(descriptor.Options.Extra) {
			schema = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema().WithEnum(values...))
			target = schema.Items.Value
		} else {
			schema.WithEnum(values...)
		}
	}

	required := false
	for _, c := range descriptor.Options.Constraints {
		switch typed := c.(type) {
		case *constraint.NotBlank:
			if !typed.AllowNull {
				required = true
			}
			if isString(target) {
				target.WithMinLength(1)
			}
			if isArray(schema) {
				schema.WithMinItems(1)
			}
		case *constraint.NotNull:
			required = true
		case *constraint.Length:
			if !isString(target) {
				continue
			}
			if typed.Min != nil {
				target.WithMinLength(int64(*typed.Min))
			}
			if typed.Max != nil {
				target.WithMaxLength(int64(*typed.Max))
			}
		case *constraint.Range:
			if !isNumeric(target) {
				continue
			}
			if typed.Min != nil {
				target.WithMin(*typed.Min)
			}
			if typed.Max != nil {
				target.WithMax(*typed.Max)
			}
		case *constraint.Regex:
			if typed.Match && isString(target) {
				target.WithPattern(typed.Expression())
			}
		case *constraint.Choice:
			switch {
			case typed.Multiple && !isArray(schema):
				schema = openapi3.NewArraySchema().WithItems(schema)
			case isArray(schema) && schema.Items == nil:
				schema.WithItems(openapi3.NewSchema())
			}
			if isArray(schema) {
				target = schema.Items.Value
			}
			target.WithEnum(typed.Choices...)
		case *constraint.Count:
			if !isArray(schema) {
				continue
			}
			if typed.Min != nil {
				schema.WithMinItems(int64(*typed.Min))
			}
			if typed.Max != nil {
				schema.WithMaxItems(int64(*typed.Max))
			}
		case *constraint.Sign:
			if isNumeric(target) {
				applySign(target, typed.Kind())
			}
		}
	}

	schema.Nullable = !required
	schema.Extensions = map[string]any{
		ExtensionFieldType: string(descriptor.Type),
	}
	if descriptor.Options.Label != "" {
		schema.Extensions[ExtensionLabel] = descriptor.Options.Label
	}
	return schema, required
}

func baseSchema(id fieldtype.ID) *openapi3.Schema {
	switch id {
	case fieldtype.Integer:
		return openapi3.NewIntegerSchema()
	case fieldtype.Number, fieldtype.Money, fieldtype.Percent, fieldtype.Range:
		return openapi3.NewFloat64Schema()
	case fieldtype.Checkbox:
		return openapi3.NewBoolSchema()
	case fieldtype.Collection, fieldtype.Repeated:
		return openapi3.NewArraySchema()
	case fieldtype.Date, fieldtype.Birthday:
		return openapi3.NewStringSchema().WithFormat("date")
	case fieldtype.DateTime:
		return openapi3.NewStringSchema().WithFormat("date-time")
	case fieldtype.Time:
		return openapi3.NewStringSchema().WithFormat("time")
	case fieldtype.Email:
		return openapi3.NewStringSchema().WithFormat("email")
	case fieldtype.URL:
		return openapi3.NewStringSchema().WithFormat("uri")
	default:
		return openapi3.NewStringSchema()
	}
}

func applySign(schema *openapi3.Schema, kind string) {
	switch kind {
	case constraint.KindPositive:
		schema.WithMin(0).WithExclusiveMin(true)
	case constraint.KindPositiveOrZero:
		schema.WithMin(0)
	case constraint.KindNegative:
		schema.WithMax(0).WithExclusiveMax(true)
	case constraint.KindNegativeOrZero:
		schema.WithMax(0)
	}
}

func multiple(extra map[string]any) bool {
	switch v := extra["multiple"].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	case nil:
		return false
	default:
		return fmt.Sprint(v) == "true"
	}
}

func isString(schema *openapi3.Schema) bool {
	return schema != nil && schema.Type.Is(openapi3.TypeString)
}

func isArray(schema *openapi3.Schema) bool {
	return schema != nil && schema.Type.Is(openapi3.TypeArray)
}

func isNumeric(schema *openapi3.Schema) bool {
	return schema != nil && (schema.Type.Is(openapi3.TypeNumber) || schema.Type.Is(openapi3.TypeInteger))
}
