package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// AnswerRecord keeps the latest outcome per (learner, question).
type AnswerRecord struct {
	ent.Schema
}

func (AnswerRecord) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerOwned{}}
}

func (AnswerRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("question_id"),
		field.Int("lesson_index"),
		field.Bool("is_correct"),
		field.Int64("answered_at").
			Comment("Unix millis"),
		field.Int("review_count").
			Default(0),
		field.Int("seq").
			Comment("Insertion order of the question in the ledger"),
	}
}
