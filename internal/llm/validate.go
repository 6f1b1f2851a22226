package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by Schema.Name.
var compiledSchemas sync.Map

// validateResponse checks raw against schema. A nil schema always passes.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, so round-trip the Go map.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchemas.Store(schema.Name, compiled)
	return compiled, nil
}
