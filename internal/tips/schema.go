package tips

import "github.com/arjun222-afk/careerprep/internal/llm"

// TipsSchema is the structured output asked of the model.
var TipsSchema = &llm.Schema{
	Name:        "preparation-tips",
	Description: "Point-wise preparation tips grouped under fixed section headings",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Section heading, exactly as given in the instructions",
						},
						"points": map[string]any{
							"type":        "array",
							"minItems":    1,
							"items":       map[string]any{"type": "string"},
							"description": "2-3 short tips (under 20 words each)",
						},
					},
					"required":             []any{"title", "points"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"sections"},
		"additionalProperties": false,
	},
}
