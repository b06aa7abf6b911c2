package schema

import (
	"fmt"

	"energyport/pkg/domain"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TypeDefaults exposes the defaults and enum constraints of one schema type.
type TypeDefaults struct {
	name   string
	schema *typeSchema
}

// Name returns the schema type name.
func (t TypeDefaults) Name() string { return t.name }

// Has reports whether the property declares a default.
func (t TypeDefaults) Has(property string) bool {
	_, ok := t.schema.defaults[property]
	return ok
}

// Required reports whether the schema lists the property as required.
func (t TypeDefaults) Required(property string) bool { return t.schema.required[property] }

// Value returns the raw default of a property. A property without a default
// is a MissingRequiredError.
func (t TypeDefaults) Value(property string) (cty.Value, error) {
	val, ok := t.schema.defaults[property]
	if !ok {
		return cty.NilVal, &domain.MissingRequiredError{Type: t.name, Property: property}
	}
	return val, nil
}

// Decode converts the default of a property into T. JSON arrays are tuples in
// cty, so the value is converted to the type implied by T before decoding.
func Decode[T any](t TypeDefaults, property string) (T, error) {
	var out T
	val, err := t.Value(property)
	if err != nil {
		return out, err
	}
	ty, err := gocty.ImpliedType(&out)
	if err != nil {
		return out, &domain.SchemaLoadError{Type: t.name, Err: err}
	}
	conv, err := convert.Convert(val, ty)
	if err != nil {
		return out, &domain.SchemaLoadError{Type: t.name, Err: fmt.Errorf("%s: %w", property, err)}
	}
	if err := gocty.FromCtyValue(conv, &out); err != nil {
		return out, &domain.SchemaLoadError{Type: t.name, Err: fmt.Errorf("%s: %w", property, err)}
	}
	return out, nil
}

// Float returns a numeric default.
func (t TypeDefaults) Float(property string) (float64, error) { return Decode[float64](t, property) }

// Int returns an integral default.
func (t TypeDefaults) Int(property string) (int, error) { return Decode[int](t, property) }

// String returns a string default.
func (t TypeDefaults) String(property string) (string, error) { return Decode[string](t, property) }

// Bool returns a boolean default.
func (t TypeDefaults) Bool(property string) (bool, error) { return Decode[bool](t, property) }

// Floats returns a numeric list default.
func (t TypeDefaults) Floats(property string) ([]float64, error) {
	return Decode[[]float64](t, property)
}

// Strings returns a string list default.
func (t TypeDefaults) Strings(property string) ([]string, error) {
	return Decode[[]string](t, property)
}

// Ints returns an integral list default, such as a [month, day] date.
func (t TypeDefaults) Ints(property string) ([]int, error) { return Decode[[]int](t, property) }

// Enum returns the allowed values of a property rendered as strings, or nil
// when the property is unconstrained.
func (t TypeDefaults) Enum(property string) []string {
	vals := t.schema.enums[property]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, render(v))
	}
	return out
}

// Check verifies that value is one of the enumerated choices of a property.
// Unconstrained properties accept any value.
func (t TypeDefaults) Check(property string, value cty.Value) error {
	allowed := t.schema.enums[property]
	if len(allowed) == 0 {
		return nil
	}
	for _, candidate := range allowed {
		if candidate.Type().Equals(value.Type()) && candidate.Equals(value).True() {
			return nil
		}
	}
	return &domain.InvalidEnumValueError{Type: t.name, Field: property, Value: render(value), Allowed: t.Enum(property)}
}

// CheckString is Check for string values.
func (t TypeDefaults) CheckString(property, value string) error {
	return t.Check(property, cty.StringVal(value))
}

// CheckInt is Check for integral values.
func (t TypeDefaults) CheckInt(property string, value int) error {
	return t.Check(property, cty.NumberIntVal(int64(value)))
}

func render(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case v.Type() == cty.String:
		return v.AsString()
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case v.Type() == cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}
	return v.GoString()
}
