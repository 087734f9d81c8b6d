package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// LearnerSession holds the catalog cursor plus JSON blobs for the
// completed set, the review session and today's missions.
type LearnerSession struct {
	ent.Schema
}

func (LearnerSession) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerOwned{}}
}

func (LearnerSession) Fields() []ent.Field {
	return []ent.Field{
		field.Int("card_cursor").
			Default(0),
		field.Text("completed").
			Default("[]").
			Comment("JSON array of completed card ids"),
		field.Text("review").
			Default("{}").
			Comment("JSON review session"),
		field.Text("missions").
			Default("{}").
			Comment("JSON mission board"),
		field.Int64("updated_at").
			Comment("Unix millis"),
	}
}
