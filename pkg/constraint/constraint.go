package constraint

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Constraint is a validation rule attached to a settings field.
type Constraint interface {
	// Kind returns the canonical constraint kind.
	Kind() string
	// Params returns the normalised construction parameters.
	Params() map[string]any
	// Validate returns a *Violation when value breaks the rule.
	Validate(value any) error
}

// Violation describes a failed constraint check.
type Violation struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (v *Violation) Error() string {
	return v.Message
}

// Describe returns a JSON friendly view of c.
func Describe(c Constraint) map[string]any {
	if c == nil {
		return nil
	}
	out := map[string]any{"kind": c.Kind()}
	if params := c.Params(); len(params) > 0 {
		out["params"] = params
	}
	return out
}

// Marshal encodes constraints as a list of kind/params objects.
func Marshal(constraints []Constraint) ([]byte, error) {
	described := make([]map[string]any, 0, len(constraints))
	for _, c := range constraints {
		described = append(described, Describe(c))
	}
	return json.Marshal(described)
}

func violation(kind, message, fallback string) *Violation {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	return &Violation{Kind: kind, Message: message}
}

func stringParam(params map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		raw, ok := params[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case string:
			return v, true
		default:
			return fmt.Sprint(v), true
		}
	}
	return "", false
}

func boolParam(params map[string]any, key string, fallback bool) (bool, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("param %q: %w", key, err)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("param %q: expected boolean, got %T", key, raw)
	}
}

func intParam(params map[string]any, key string) (int, bool, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, false, fmt.Errorf("param %q: expected integer, got %T", key, raw)
	}
	if f != float64(int(f)) {
		return 0, false, fmt.Errorf("param %q: expected integer, got %v", key, raw)
	}
	return int(f), true, nil
}

func floatParam(params map[string]any, key string) (float64, bool, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, false, fmt.Errorf("param %q: expected number, got %T", key, raw)
	}
	return f, true, nil
}

func sliceParam(params map[string]any, keys ...string) ([]any, bool) {
	for _, key := range keys {
		raw, ok := params[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case []any:
			return v, true
		case []string:
			out := make([]any, len(v))
			for i, s := range v {
				out[i] = s
			}
			return out, true
		}
	}
	return nil, false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

func collectionLen(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func sameValue(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}
