// Package schema loads the property-default and enum catalogue of a schema
// document. Defaults are held as cty values and decoded on demand into the Go
// type a builder asks for.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	schemadoc "energyport/docs/schema"
	"energyport/pkg/domain"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Defaults is an immutable catalogue of per-type property defaults, enum
// constraints, and required properties. It is safe for concurrent reads.
type Defaults struct {
	source string
	types  map[string]*typeSchema
}

type typeSchema struct {
	defaults map[string]cty.Value
	enums    map[string][]cty.Value
	required map[string]bool
}

type catalogue struct {
	Components struct {
		Schemas map[string]rawType `json:"schemas"`
	} `json:"components"`
}

type rawType struct {
	Required   []string                   `json:"required"`
	Properties map[string]json.RawMessage `json:"properties"`
}

type rawProperty struct {
	Default json.RawMessage   `json:"default"`
	Enum    []json.RawMessage `json:"enum"`
	Items   *rawProperty      `json:"items"`
}

// Load parses one or more schema catalogues into a single Defaults value.
// Later catalogues override types declared by earlier ones.
func Load(source string, docs ...[]byte) (*Defaults, error) {
	d := &Defaults{source: source, types: map[string]*typeSchema{}}
	for _, data := range docs {
		var cat catalogue
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, &domain.SchemaLoadError{Source: source, Err: err}
		}
		if len(cat.Components.Schemas) == 0 {
			return nil, &domain.SchemaLoadError{Source: source, Err: fmt.Errorf("no components.schemas block")}
		}
		for name, raw := range cat.Components.Schemas {
			ts, err := parseType(raw)
			if err != nil {
				return nil, &domain.SchemaLoadError{Source: source, Type: name, Err: err}
			}
			d.types[name] = ts
		}
	}
	return d, nil
}

// LoadFile reads a model schema catalogue from disk and merges it over the
// embedded simulation parameter catalogue.
func LoadFile(path string) (*Defaults, error) {
	return LoadFiles(path)
}

// LoadFiles reads catalogues from disk in order, later files overriding
// earlier ones type by type, on top of the embedded simulation parameter
// catalogue.
func LoadFiles(paths ...string) (*Defaults, error) {
	docs := [][]byte{schemadoc.SimulationParameterSchema()}
	for _, path := range paths {
		// #nosec G304 -- the schema path is operator supplied configuration
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.SchemaLoadError{Source: path, Err: err}
		}
		docs = append(docs, data)
	}
	return Load(strings.Join(paths, ","), docs...)
}

// LoadEmbedded returns the defaults declared by the embedded catalogues.
func LoadEmbedded() (*Defaults, error) {
	return Load("embedded", schemadoc.ModelSchema(), schemadoc.SimulationParameterSchema())
}

func parseType(raw rawType) (*typeSchema, error) {
	ts := &typeSchema{
		defaults: map[string]cty.Value{},
		enums:    map[string][]cty.Value{},
		required: map[string]bool{},
	}
	for _, name := range raw.Required {
		ts.required[name] = true
	}
	for name, body := range raw.Properties {
		var prop rawProperty
		if err := json.Unmarshal(body, &prop); err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		if len(prop.Default) > 0 && string(prop.Default) != "null" {
			val, err := ctyValue(prop.Default)
			if err != nil {
				return nil, fmt.Errorf("property %s default: %w", name, err)
			}
			ts.defaults[name] = val
		}
		enum := prop.Enum
		if len(enum) == 0 && prop.Items != nil {
			enum = prop.Items.Enum
		}
		for _, item := range enum {
			val, err := ctyValue(item)
			if err != nil {
				return nil, fmt.Errorf("property %s enum: %w", name, err)
			}
			ts.enums[name] = append(ts.enums[name], val)
		}
	}
	return ts, nil
}

func ctyValue(raw json.RawMessage) (cty.Value, error) {
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(raw, ty)
}

// Source names where the catalogue was loaded from.
func (d *Defaults) Source() string { return d.source }

// Types returns the sorted names of every declared type.
func (d *Defaults) Types() []string {
	out := make([]string, 0, len(d.types))
	for name := range d.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultFor returns the declared default of a property. The boolean is false
// when the property has no default. An undeclared type is a SchemaLoadError.
func (d *Defaults) DefaultFor(typeName, property string) (cty.Value, bool, error) {
	ts, ok := d.types[typeName]
	if !ok {
		return cty.NilVal, false, &domain.SchemaLoadError{Source: d.source, Type: typeName, Err: fmt.Errorf("type not declared")}
	}
	val, ok := ts.defaults[property]
	return val, ok, nil
}

// For returns the defaults of a single type.
func (d *Defaults) For(typeName string) (TypeDefaults, error) {
	ts, ok := d.types[typeName]
	if !ok {
		return TypeDefaults{}, &domain.SchemaLoadError{Source: d.source, Type: typeName, Err: fmt.Errorf("type not declared")}
	}
	return TypeDefaults{name: typeName, schema: ts}, nil
}
