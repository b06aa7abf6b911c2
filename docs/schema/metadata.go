// Package schema embeds the model and simulation parameter schema catalogues
// used for property defaults and opt-in document validation.
package schema

import (
	_ "embed"
	"encoding/json"
	"sync"
)

// Metadata captures the high-level metadata block of a schema catalogue.
type Metadata struct {
	Source string `json:"source"`
	Status string `json:"status"`
}

type catalogueDoc struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	Metadata Metadata `json:"metadata"`
}

// Model schema catalogue embedded for defaults and validation.
//
//go:embed model.json
var modelSchema []byte

// Simulation parameter schema catalogue embedded for defaults and validation.
//
//go:embed simulation-parameter.json
var simulationParameterSchema []byte

var (
	modelOnce sync.Once
	modelDoc  catalogueDoc
	modelErr  error
)

// ModelSchema returns a copy of the embedded model schema catalogue.
func ModelSchema() []byte { return append([]byte(nil), modelSchema...) }

// SimulationParameterSchema returns a copy of the embedded simulation
// parameter schema catalogue.
func SimulationParameterSchema() []byte {
	return append([]byte(nil), simulationParameterSchema...)
}

func loadModelDoc() {
	modelOnce.Do(func() {
		modelErr = json.Unmarshal(modelSchema, &modelDoc)
	})
}

// ModelSchemaVersion returns the version declared by the embedded model schema.
func ModelSchemaVersion() (string, error) {
	loadModelDoc()
	return modelDoc.Info.Version, modelErr
}

// ModelSchemaMetadata returns the metadata (status, source) declared by the
// embedded model schema.
func ModelSchemaMetadata() (Metadata, error) {
	loadModelDoc()
	return modelDoc.Metadata, modelErr
}
