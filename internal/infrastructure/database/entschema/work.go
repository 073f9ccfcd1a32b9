package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// Work holds the schema definition for the works table, the root of the
// structural hierarchy.
type Work struct {
	ent.Schema
}

// Fields of the Work.
func (Work) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.String("title").Optional().Nillable(),
		field.String("description").Optional().Nillable(),
		field.String("language").Default(""),
		field.JSON("metadata", documentZero).Default(documentZero),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Annotations of the Work.
func (Work) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "works"},
	}
}
