package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequest records every LLM API call for cost tracking and debugging.
type LLMRequest struct {
	ent.Schema
}

func (LLMRequest) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID"),
		field.String("provider").
			Comment("Provider name: anthropic, openai, gemini, openrouter"),
		field.String("model").
			Comment("Actual model ID used"),
		field.String("purpose").
			Comment("Consumer-provided label, e.g. authoring"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.Int64("created_at").
			Comment("Unix millis"),
	}
}

func (LLMRequest) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
