// Package validation checks building energy documents against the schema
// catalogues before they are translated. Validation is opt-in: the translator
// itself only relies on the defaults and enums of the catalogue.
package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	schemadoc "energyport/docs/schema"
)

const refPrefix = "#/components/schemas/"

// Catalogue is a compiled set of component schemas keyed by name.
type Catalogue struct {
	Versions []string
	schemas  map[string]*node
}

// node is the subset of an OpenAPI schema object understood by the validator.
type node struct {
	Ref              string           `json:"$ref"`
	Type             string           `json:"type"`
	Required         []string         `json:"required"`
	Enum             []any            `json:"enum"`
	Minimum          *float64         `json:"minimum"`
	Maximum          *float64         `json:"maximum"`
	ExclusiveMinimum *float64         `json:"exclusiveMinimum"`
	ExclusiveMaximum *float64         `json:"exclusiveMaximum"`
	MinItems         *int             `json:"minItems"`
	MaxItems         *int             `json:"maxItems"`
	MaxLength        *int             `json:"maxLength"`
	Items            *node            `json:"items"`
	Properties       map[string]*node `json:"properties"`
	AnyOf            []*node          `json:"anyOf"`
	Discriminator    *struct {
		PropertyName string `json:"propertyName"`
	} `json:"discriminator"`
}

type catalogueDocument struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	Components struct {
		Schemas map[string]*node `json:"schemas"`
	} `json:"components"`
}

// Compile merges one or more catalogue documents. Component names must be
// unique across documents and every $ref must resolve.
func Compile(docs ...[]byte) (*Catalogue, error) {
	c := &Catalogue{schemas: make(map[string]*node)}
	for i, data := range docs {
		var doc catalogueDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse schema catalogue %d: %w", i, err)
		}
		if len(doc.Components.Schemas) == 0 {
			return nil, fmt.Errorf("schema catalogue %d declares no components", i)
		}
		for name, schema := range doc.Components.Schemas {
			if _, dup := c.schemas[name]; dup {
				return nil, fmt.Errorf("schema component %q declared twice", name)
			}
			c.schemas[name] = schema
		}
		c.Versions = append(c.Versions, doc.Info.Version)
	}
	var unresolved []string
	for name, schema := range c.schemas {
		walkRefs(schema, func(ref string) {
			if _, ok := c.lookup(ref); !ok {
				unresolved = append(unresolved, fmt.Sprintf("%s -> %s", name, ref))
			}
		})
	}
	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return nil, fmt.Errorf("unresolved schema references: %s", strings.Join(unresolved, ", "))
	}
	return c, nil
}

// LoadCatalogue reads and compiles catalogue files from disk.
func LoadCatalogue(paths ...string) (*Catalogue, error) {
	docs := make([][]byte, 0, len(paths))
	for _, path := range paths {
		// #nosec G304 -- schema paths are supplied by the operator
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema catalogue: %w", err)
		}
		docs = append(docs, data)
	}
	return Compile(docs...)
}

// EmbeddedCatalogue compiles the model and simulation parameter catalogues
// shipped with the binary.
func EmbeddedCatalogue() (*Catalogue, error) {
	return Compile(schemadoc.ModelSchema(), schemadoc.SimulationParameterSchema())
}

// Has reports whether the catalogue declares the named component.
func (c *Catalogue) Has(name string) bool {
	_, ok := c.schemas[name]
	return ok
}

// Components returns the declared component names in sorted order.
func (c *Catalogue) Components() []string {
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalogue) lookup(ref string) (*node, bool) {
	if !strings.HasPrefix(ref, refPrefix) {
		return nil, false
	}
	n, ok := c.schemas[strings.TrimPrefix(ref, refPrefix)]
	return n, ok
}

// resolve follows $ref chains. Compile guarantees every reference exists.
func (c *Catalogue) resolve(n *node) *node {
	for n != nil && n.Ref != "" {
		target, ok := c.lookup(n.Ref)
		if !ok {
			return nil
		}
		n = target
	}
	return n
}

func walkRefs(n *node, fn func(string)) {
	if n == nil {
		return
	}
	if n.Ref != "" {
		fn(n.Ref)
	}
	walkRefs(n.Items, fn)
	for _, prop := range n.Properties {
		walkRefs(prop, fn)
	}
	for _, alt := range n.AnyOf {
		walkRefs(alt, fn)
	}
}
