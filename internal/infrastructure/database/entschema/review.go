package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Review holds the schema definition for the reviews table, a diagnostic
// finding over some scope (work/document/section/block).
type Review struct {
	ent.Schema
}

func (Review) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.String("scope_kind").NotEmpty(),
		field.UUID("scope_id", uuidZero).Immutable(),
		field.String("issue_type").NotEmpty(),
		field.String("message").Default(""),
		field.String("severity").Default("info"),
		field.JSON("metadata", documentZero).Default(documentZero),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Review) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("scope_kind", "scope_id"),
		index.Fields("severity"),
	}
}

func (Review) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "reviews"},
	}
}
