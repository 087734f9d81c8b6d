// Package schema describes the tables created by the store migrations. The
// store builds its queries with the ent SQL dialect builder; these
// definitions are kept in step with the migrations by a test.
package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Learner is one row per registered learner.
type Learner struct {
	ent.Schema
}

func (Learner) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID"),
		field.String("username").
			Unique().
			NotEmpty(),
		field.Int("credits").
			Default(0),
		field.Int("streak").
			Default(0),
		field.Int("total_answered").
			Default(0),
		field.Int("total_correct").
			Default(0),
		field.Enum("level").
			Values("beginner", "intermediate", "advanced").
			Default("beginner"),
		field.Int64("start_date").
			Optional().
			Nillable().
			Comment("Unix millis; unlock days count from here"),
		field.String("last_active_date").
			Default("").
			Comment("YYYY-MM-DD in the service time zone"),
		field.Int64("created_at").
			Immutable().
			Comment("Unix millis"),
	}
}
