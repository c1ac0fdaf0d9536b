package schema

import (
	"strings"
	"testing"
)

var tip = &Schema{
	Name: "test-tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":  map[string]any{"type": "string", "minLength": 1},
			"points": StringArray(),
			"level":  map[string]any{"type": "string", "enum": []any{"basic", "advanced"}},
			"source": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{"type": "string"},
				},
				"required": []any{"url"},
			},
		},
		"required": []any{"title", "points"},
	},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid", `{"title":"Resume","points":["Be concise"],"level":"basic"}`, ""},
		{"without optional", `{"title":"Resume","points":[]}`, ""},
		{"nested valid", `{"title":"x","points":[],"source":{"url":"https://example.com"}}`, ""},
		{"missing required", `{"title":"Resume"}`, "test-tip"},
		{"wrong type", `{"title":"Resume","points":"Be concise"}`, "test-tip"},
		{"bad enum", `{"title":"x","points":[],"level":"expert"}`, "test-tip"},
		{"nested missing", `{"title":"x","points":[],"source":{}}`, "test-tip"},
		{"empty title", `{"title":"","points":[]}`, "test-tip"},
		{"malformed", `{"title":`, "invalid JSON"},
		{"empty", ``, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tip.Validate([]byte(tt.raw))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NilSchema(t *testing.T) {
	var s *Schema
	if err := s.Validate([]byte("not json")); err != nil {
		t.Errorf("nil schema rejected input: %v", err)
	}
}

func TestValidate_SameNameDifferentSchemas(t *testing.T) {
	a := &Schema{Name: "dup", Definition: map[string]any{"type": "string"}}
	b := &Schema{Name: "dup", Definition: map[string]any{"type": "integer"}}
	if err := a.Validate([]byte(`"x"`)); err != nil {
		t.Errorf("a: %v", err)
	}
	if err := b.Validate([]byte(`3`)); err != nil {
		t.Errorf("b: %v", err)
	}
}

func TestValidate_BadDefinition(t *testing.T) {
	bad := &Schema{Name: "bad", Definition: map[string]any{"type": 7}}
	if err := bad.Validate([]byte(`{}`)); err == nil {
		t.Error("invalid schema definition accepted")
	}
}
