package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed scene.schema.json
var schemaJSON []byte

const schemaURL = "https://massing.dev/schema/scene.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func sceneSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// CheckStructure validates raw scene YAML against the embedded JSON schema.
// The YAML is normalized through JSON first so numbers and maps have the
// types the validator expects.
func CheckStructure(data []byte) error {
	s, err := sceneSchema()
	if err != nil {
		return fmt.Errorf("compiling scene schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing scene YAML: %w", err)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalizing scene YAML: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("normalizing scene YAML: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("scene does not match schema: %w", err)
	}
	return nil
}
