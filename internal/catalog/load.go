package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

//go:embed data/schema.json
var schemaJSON []byte

const schemaURL = "schema://catalog.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Embedded returns the raw YAML of the built-in catalog.
func Embedded() []byte {
	return bytes.Clone(embeddedCatalog)
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog, checks it against the catalog schema,
// and runs semantic validation. Any problem is returned as an error;
// a catalog is never partially built.
func Parse(data []byte) (*Catalog, error) {
	// The schema validator wants plain JSON values, so take the YAML
	// through a generic decode and a JSON round trip first.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("catalog is empty")
	}
	rawBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert catalog to JSON: %w", err)
	}
	var doc any
	if err := json.Unmarshal(rawBytes, &doc); err != nil {
		return nil, fmt.Errorf("convert catalog to JSON: %w", err)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return build(&f)
}

// getSchema compiles the embedded catalog schema once.
func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal(schemaJSON, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, parsed); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile catalog schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
