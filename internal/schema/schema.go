// Package schema validates JSON documents against named JSON Schemas.
// Compiled schemas are cached per *Schema.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	// Name identifies the schema in errors and, for LLM providers, as the
	// tool or response-format name. Kebab-case.
	Name string

	// Description guides LLM generation. Unused for validation.
	Description string

	Definition map[string]any
}

var compiled sync.Map // map[*Schema]*jsonschema.Schema

// Validate checks raw against s. A nil schema accepts anything, including
// invalid JSON.
func (s *Schema) Validate(raw []byte) error {
	if s == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	c, err := s.compile()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	if err := c.Validate(doc); err != nil {
		return fmt.Errorf("schema %q: %w", s.Name, err)
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if c, ok := compiled.Load(s); ok {
		return c.(*jsonschema.Schema), nil
	}

	// AddResource wants the representation UnmarshalJSON produces, not Go maps
	// with typed slices.
	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	url := fmt.Sprintf("mem:///%s.json", s.Name)
	comp := jsonschema.NewCompiler()
	if err := comp.AddResource(url, def); err != nil {
		return nil, err
	}
	c, err := comp.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.Store(s, c)
	return c, nil
}

// StringArray is the definition of an array of strings.
func StringArray() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}
