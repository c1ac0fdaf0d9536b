package resultsapi

import "github.com/arjun222-afk/careerprep/internal/schema"

var stringArray = schema.StringArray()

var questionListSchema = &schema.Schema{
	Name: "quiz-questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":            map[string]any{"type": "integer"},
				"question":      map[string]any{"type": "string"},
				"options":       stringArray,
				"correctAnswer": map[string]any{"type": "string"},
				"skill":         map[string]any{"type": "string"},
			},
			"required": []any{"question", "options", "correctAnswer", "skill"},
		},
	},
}

var startInterviewSchema = &schema.Schema{
	Name: "start-interview",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"interview_id":   map[string]any{"type": []any{"string", "integer"}},
			"greeting":       map[string]any{"type": "string"},
			"first_question": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"interview_id", "first_question"},
	},
}

var answerSchema = &schema.Schema{
	Name: "interview-answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"next_question": map[string]any{"type": []any{"string", "null"}},
			"is_final":      map[string]any{"type": "boolean"},
		},
	},
}

var completeSchema = &schema.Schema{
	Name: "complete-interview",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"analysis": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"technical_score":     map[string]any{"type": "number"},
					"communication_score": map[string]any{"type": "number"},
					"strengths":           stringArray,
				},
				"required": []any{"technical_score", "communication_score"},
			},
			"feedback": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"areas_for_improvement": stringArray,
					"next_steps":            stringArray,
					"overall_feedback":      map[string]any{"type": "string"},
				},
			},
		},
		"required": []any{"analysis", "feedback"},
	},
}

var networkStatsSchema = &schema.Schema{
	Name: "network-stats",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success":     map[string]any{"type": "boolean"},
			"user_count":  map[string]any{"type": "integer", "minimum": 0},
			"skill_count": map[string]any{"type": "integer", "minimum": 0},
			"job_count":   map[string]any{"type": "integer", "minimum": 0},
			"top_skills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"connections": map[string]any{"type": "integer"},
					},
					"required": []any{"name", "connections"},
				},
			},
		},
		"required": []any{"success"},
	},
}

var recommendationItem = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"skill":          map[string]any{"type": "string"},
		"peer_frequency": map[string]any{"type": "integer", "minimum": 0},
		"job_demand":     map[string]any{"type": "integer", "minimum": 0},
	},
	"required": []any{"skill", "peer_frequency", "job_demand"},
}

// The endpoint has been seen both as a bare list and wrapped in an envelope.
var recommendationsSchema = &schema.Schema{
	Name: "skill-recommendations",
	Definition: map[string]any{
		"oneOf": []any{
			map[string]any{"type": "array", "items": recommendationItem},
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"success":         map[string]any{"type": "boolean"},
					"recommendations": map[string]any{"type": "array", "items": recommendationItem},
					"error":           map[string]any{"type": "string"},
				},
				"required": []any{"success"},
			},
		},
	},
}
