package model

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func compileSchemas() {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		schemasErr = err
		return
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	for _, entry := range entries {
		data, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			schemasErr = err
			return
		}
		if err := compiler.AddResource(entry.Name(), bytes.NewReader(data)); err != nil {
			schemasErr = fmt.Errorf("failed to add schema %s: %w", entry.Name(), err)
			return
		}
	}

	compiled := make(map[string]*jsonschema.Schema, len(entries))
	for _, entry := range entries {
		s, err := compiler.Compile(entry.Name())
		if err != nil {
			schemasErr = fmt.Errorf("failed to compile schema %s: %w", entry.Name(), err)
			return
		}
		compiled[entry.Name()] = s
	}
	schemas = compiled
}

// validateDocument checks an artifact against its embedded schema before decoding
func validateDocument(schemaName string, data []byte) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	schema, ok := schemas[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q", schemaName)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("artifact does not match %s: %w", schemaName, err)
	}
	return nil
}
