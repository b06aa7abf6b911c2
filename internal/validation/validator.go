package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"
)

// Violation codes.
const (
	CodeParse       = "parse"
	CodeType        = "type"
	CodeRequired    = "required"
	CodeEnum        = "enum"
	CodeRange       = "range"
	CodeLength      = "length"
	CodeUnknownType = "unknown_type"
	CodeNoMatch     = "no_match"
)

// Error is a single schema violation. Path locates the offending value using
// a JSONPath-like notation rooted at "$"; File is set for directory scans.
type Error struct {
	File    string
	Path    string
	Message string
	Code    string
}

func (e Error) String() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks data against the named root component. An empty result
// means the document is valid.
func (c *Catalogue) Validate(root string, data []byte) []Error {
	schema, ok := c.schemas[root]
	if !ok {
		return []Error{{Path: "$", Code: CodeUnknownType, Message: fmt.Sprintf("no schema component %q", root)}}
	}
	value, err := decodeValue(data)
	if err != nil {
		return []Error{{Path: "$", Code: CodeParse, Message: err.Error()}}
	}
	var errs []Error
	c.check(schema, value, "$", &errs)
	return errs
}

// ValidateDocument picks the root component from the document's own "type"
// field, so a Model and a SimulationParameter can both be checked.
func (c *Catalogue) ValidateDocument(data []byte) []Error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return []Error{{Path: "$", Code: CodeParse, Message: err.Error()}}
	}
	if head.Type == "" {
		return []Error{{Path: "$.type", Code: CodeRequired, Message: "document type is required"}}
	}
	return c.Validate(head.Type, data)
}

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return value, nil
}

func (c *Catalogue) check(n *node, value any, path string, errs *[]Error) {
	n = c.resolve(n)
	if n == nil {
		return
	}
	if len(n.AnyOf) > 0 {
		c.checkAnyOf(n, value, path, errs)
		return
	}
	if n.Type != "" && !typeMatches(n.Type, value) {
		*errs = append(*errs, Error{Path: path, Code: CodeType, Message: fmt.Sprintf("expected %s, got %s", n.Type, jsonKind(value))})
		return
	}
	if len(n.Enum) > 0 && !enumContains(n.Enum, value) {
		*errs = append(*errs, Error{Path: path, Code: CodeEnum, Message: fmt.Sprintf("value %v is not one of %v", value, n.Enum)})
	}
	switch v := value.(type) {
	case float64:
		checkRange(n, v, path, errs)
	case string:
		if n.MaxLength != nil && utf8.RuneCountInString(v) > *n.MaxLength {
			*errs = append(*errs, Error{Path: path, Code: CodeLength, Message: fmt.Sprintf("longer than %d characters", *n.MaxLength)})
		}
	case []any:
		if n.MinItems != nil && len(v) < *n.MinItems {
			*errs = append(*errs, Error{Path: path, Code: CodeLength, Message: fmt.Sprintf("expected at least %d items, got %d", *n.MinItems, len(v))})
		}
		if n.MaxItems != nil && len(v) > *n.MaxItems {
			*errs = append(*errs, Error{Path: path, Code: CodeLength, Message: fmt.Sprintf("expected at most %d items, got %d", *n.MaxItems, len(v))})
		}
		if n.Items != nil {
			for i, item := range v {
				c.check(n.Items, item, fmt.Sprintf("%s[%d]", path, i), errs)
			}
		}
	case map[string]any:
		for _, field := range missingRequired(n.Required, v) {
			*errs = append(*errs, Error{Path: path + "." + field, Code: CodeRequired, Message: "required property is missing"})
		}
		names := make([]string, 0, len(n.Properties))
		for name := range n.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if field, ok := v[name]; ok {
				c.check(n.Properties[name], field, path+"."+name, errs)
			}
		}
	}
}

// checkAnyOf routes discriminated unions by their discriminant and otherwise
// accepts the value when any alternative matches cleanly.
func (c *Catalogue) checkAnyOf(n *node, value any, path string, errs *[]Error) {
	if n.Discriminator != nil {
		prop := n.Discriminator.PropertyName
		obj, ok := value.(map[string]any)
		if !ok {
			*errs = append(*errs, Error{Path: path, Code: CodeType, Message: fmt.Sprintf("expected object, got %s", jsonKind(value))})
			return
		}
		disc, _ := obj[prop].(string)
		for _, alt := range n.AnyOf {
			target := c.resolve(alt)
			if target == nil {
				continue
			}
			if p, ok := target.Properties[prop]; ok && enumContains(p.Enum, disc) {
				c.check(target, value, path, errs)
				return
			}
		}
		*errs = append(*errs, Error{Path: path + "." + prop, Code: CodeUnknownType, Message: fmt.Sprintf("unknown %s %q", prop, disc)})
		return
	}
	for _, alt := range n.AnyOf {
		var trial []Error
		c.check(alt, value, path, &trial)
		if len(trial) == 0 {
			return
		}
	}
	*errs = append(*errs, Error{Path: path, Code: CodeNoMatch, Message: "value matches none of the allowed alternatives"})
}

func checkRange(n *node, v float64, path string, errs *[]Error) {
	var msg string
	switch {
	case n.Minimum != nil && v < *n.Minimum:
		msg = fmt.Sprintf("%v is below the minimum %v", v, *n.Minimum)
	case n.Maximum != nil && v > *n.Maximum:
		msg = fmt.Sprintf("%v is above the maximum %v", v, *n.Maximum)
	case n.ExclusiveMinimum != nil && v <= *n.ExclusiveMinimum:
		msg = fmt.Sprintf("%v must be greater than %v", v, *n.ExclusiveMinimum)
	case n.ExclusiveMaximum != nil && v >= *n.ExclusiveMaximum:
		msg = fmt.Sprintf("%v must be less than %v", v, *n.ExclusiveMaximum)
	default:
		return
	}
	*errs = append(*errs, Error{Path: path, Code: CodeRange, Message: msg})
}

func typeMatches(want string, value any) bool {
	switch want {
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "integer":
		v, ok := value.(float64)
		return ok && v == math.Trunc(v)
	case "null":
		return value == nil
	}
	return true
}

func jsonKind(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", value)
}

func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if allowed == value {
			return true
		}
	}
	return false
}

func missingRequired(required []string, payload map[string]any) []string {
	if len(required) == 0 {
		return nil
	}
	var missing []string
	for _, field := range required {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}
