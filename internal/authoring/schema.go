package authoring

import "github.com/abhisek/lessonloop/internal/llm"

// TopicSchema is the response shape for a generated topic.
var TopicSchema = &llm.Schema{
	Name:        "topic-lessons",
	Description: "A short topic made of micro-lessons, each with a concept, an example and one multiple-choice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{
				"type":        "string",
				"description": "One sentence describing the topic",
			},
			"lessons": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Short lesson title (3-8 words)",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"beginner", "intermediate", "advanced"},
						},
						"concept": map[string]any{
							"type":        "string",
							"description": "Plain explanation of the idea (3-5 sentences)",
						},
						"takeaway": map[string]any{
							"type":        "string",
							"description": "One sentence the learner should remember",
						},
						"example": map[string]any{
							"type":        "string",
							"description": "A short real-world story that shows the concept in use",
						},
						"question": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"prompt": map[string]any{
									"type":        "string",
									"description": "The question text",
								},
								"options": map[string]any{
									"type":     "array",
									"items":    map[string]any{"type": "string"},
									"minItems": 2,
									"maxItems": 4,
								},
								"answer": map[string]any{
									"type":        "integer",
									"description": "Zero-based index of the correct option",
								},
								"explanation": map[string]any{
									"type":        "string",
									"description": "Why the correct option is right",
								},
							},
							"required":             []any{"prompt", "options", "answer", "explanation"},
							"additionalProperties": false,
						},
					},
					"required":             []any{"title", "difficulty", "concept", "takeaway", "example", "question"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"description", "lessons"},
		"additionalProperties": false,
	},
}
