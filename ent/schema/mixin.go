package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// LearnerOwned provides the learner_id column shared by every table that
// hangs off a learner. Rows are removed with their learner.
type LearnerOwned struct {
	mixin.Schema
}

func (LearnerOwned) Fields() []ent.Field {
	return []ent.Field{
		field.String("learner_id").
			NotEmpty().
			Immutable().
			Comment("Owning learner; ON DELETE CASCADE"),
	}
}

func (LearnerOwned) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("learner_id"),
	}
}
