package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	keySettings    = "settings"
	keyValidation  = "validation"
	keyType        = "type"
	keyOptions     = "options"
	keyConstraints = "constraints"
	keyChoices     = "choices"
)

// Parse decodes a JSON or YAML settings document. Settings and constraint
// mappings keep their document order.
//
//	settings:
//	  theme:
//	    validation:
//	      type: choice
//	      options:
//	        choices: [light, dark]
//	        constraints:
//	          NotBlank: ~
func Parse(data []byte, source string) (Schema, error) {
	root, err := parseRoot(data, source)
	if err != nil {
		return Schema{}, err
	}
	if root == nil {
		return Schema{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return Schema{}, fmt.Errorf("settings: %s: document root must be a mapping", source)
	}

	list := mappingValue(root, keySettings)
	if list == nil || isNull(list) {
		return Schema{}, nil
	}
	if list.Kind != yaml.MappingNode {
		return Schema{}, fmt.Errorf("settings: %s: %q must be a mapping", source, keySettings)
	}

	var schema Schema
	for i := 0; i+1 < len(list.Content); i += 2 {
		name := strings.TrimSpace(list.Content[i].Value)
		def, err := parseDefinition(name, list.Content[i+1])
		if err != nil {
			return Schema{}, fmt.Errorf("settings: %s: setting %q: %w", source, name, err)
		}
		if err := schema.Add(def); err != nil {
			return Schema{}, fmt.Errorf("%w (file %s)", err, source)
		}
	}
	return schema, nil
}

// LoadFS reads and parses a single settings document from fsys.
func LoadFS(fsys fs.FS, path string) (Schema, error) {
	if fsys == nil {
		return Schema{}, fmt.Errorf("settings: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Schema{}, fmt.Errorf("settings: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadDir walks fsys and merges every JSON/YAML settings document in lexical
// path order. A setting defined in more than one file is an error.
func LoadDir(fsys fs.FS) (Schema, error) {
	var merged Schema
	if fsys == nil {
		return merged, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		schema, err := LoadFS(fsys, path)
		if err != nil {
			return err
		}
		for _, def := range schema.defs {
			if err := merged.Add(def); err != nil {
				return fmt.Errorf("%w (file %s)", err, path)
			}
		}
		return nil
	})
	if err != nil {
		return Schema{}, err
	}
	return merged, nil
}

// LoadData decodes an existing settings record from JSON or YAML.
func LoadData(data []byte) (Data, error) {
	out := Data{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := yaml.Unmarshal(NormaliseJSON(data), &out); err != nil {
		return nil, fmt.Errorf("settings: parse data: %w", err)
	}
	return out, nil
}

func parseRoot(data []byte, source string) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("settings: file %s is empty", source)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(NormaliseJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("settings: parse %s: invalid JSON or YAML: %w", source, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

// NormaliseJSON replaces tab indentation in valid JSON documents so the YAML
// parser accepts them. Valid JSON never holds raw tabs inside strings.
func NormaliseJSON(data []byte) []byte {
	if !json.Valid(data) || !bytes.ContainsRune(data, '\t') {
		return data
	}
	return bytes.ReplaceAll(data, []byte("\t"), []byte(" "))
}

func parseDefinition(name string, node *yaml.Node) (Definition, error) {
	def := Definition{Name: name, Type: DefaultType}
	if node == nil || isNull(node) {
		return def, nil
	}
	if node.Kind != yaml.MappingNode {
		return def, fmt.Errorf("definition must be a mapping")
	}

	validation := mappingValue(node, keyValidation)
	if validation == nil || isNull(validation) {
		return def, nil
	}
	if validation.Kind != yaml.MappingNode {
		return def, fmt.Errorf("%q must be a mapping", keyValidation)
	}

	if typ := mappingValue(validation, keyType); typ != nil && !isNull(typ) {
		if typ.Kind != yaml.ScalarNode {
			return def, fmt.Errorf("%q must be a string", keyType)
		}
		def.Type = strings.TrimSpace(typ.Value)
	}

	options := mappingValue(validation, keyOptions)
	if options == nil || isNull(options) {
		return def, nil
	}
	if options.Kind != yaml.MappingNode {
		return def, fmt.Errorf("%q must be a mapping", keyOptions)
	}

	opts, err := parseOptions(options)
	if err != nil {
		return def, err
	}
	def.Options = opts
	return def, nil
}

func parseOptions(node *yaml.Node) (ValidationOptions, error) {
	var opts ValidationOptions
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		switch key {
		case keyConstraints:
			specs, err := parseConstraints(value)
			if err != nil {
				return opts, err
			}
			opts.Constraints = specs
		case keyChoices:
			if isNull(value) {
				continue
			}
			if value.Kind != yaml.SequenceNode {
				return opts, fmt.Errorf("%q must be a list", keyChoices)
			}
			var choices []string
			if err := value.Decode(&choices); err != nil {
				return opts, fmt.Errorf("decode %q: %w", keyChoices, err)
			}
			opts.Choices = choices
		default:
			var decoded any
			if err := value.Decode(&decoded); err != nil {
				return opts, fmt.Errorf("decode option %q: %w", key, err)
			}
			if opts.Extra == nil {
				opts.Extra = make(map[string]any)
			}
			opts.Extra[key] = decoded
		}
	}
	return opts, nil
}

// parseConstraints accepts either a mapping (kind: params) or a list of
// single-key mappings, the latter allowing a kind to repeat.
func parseConstraints(node *yaml.Node) ([]ConstraintSpec, error) {
	if isNull(node) {
		return nil, nil
	}

	var specs []ConstraintSpec
	appendPairs := func(mapping *yaml.Node) error {
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			kind := strings.TrimSpace(mapping.Content[i].Value)
			if kind == "" {
				return fmt.Errorf("constraint kind is required")
			}
			params, err := constraintParams(mapping.Content[i+1])
			if err != nil {
				return fmt.Errorf("constraint %q: %w", kind, err)
			}
			specs = append(specs, ConstraintSpec{Kind: kind, Params: params})
		}
		return nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		if err := appendPairs(node); err != nil {
			return nil, err
		}
	case yaml.SequenceNode:
		for idx, item := range node.Content {
			if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
				return nil, fmt.Errorf("%q entry %d must be a single-key mapping", keyConstraints, idx)
			}
			if err := appendPairs(item); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%q must be a mapping or a list", keyConstraints)
	}
	return specs, nil
}

// constraintParams decodes constraint parameters. Scalars and lists become the
// default "value" option.
func constraintParams(node *yaml.Node) (map[string]any, error) {
	if isNull(node) {
		return map[string]any{}, nil
	}
	if node.Kind == yaml.MappingNode {
		params := map[string]any{}
		if err := node.Decode(&params); err != nil {
			return nil, err
		}
		return params, nil
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return nil, err
	}
	return map[string]any{"value": value}, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			value := node.Content[i+1]
			if value.Kind == yaml.AliasNode && value.Alias != nil {
				return value.Alias
			}
			return value
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
