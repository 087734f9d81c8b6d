package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// TopicUnlock is a scheduled opening of a topic under the chained policy.
type TopicUnlock struct {
	ent.Schema
}

func (TopicUnlock) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerOwned{}}
}

func (TopicUnlock) Fields() []ent.Field {
	return []ent.Field{
		field.String("topic_id"),
		field.Int64("unlocks_at").
			Comment("Unix millis of the local midnight the topic opens"),
	}
}
