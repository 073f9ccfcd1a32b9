package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Section holds the schema definition for the sections table. A Section may
// nest under another Section in the same Document (parent_section_id);
// enforcing that the parent belongs to the same document is done in
// internal/adapter/repository, not here — a same-table self-reference check
// constraint can't see across the parent row.
type Section struct {
	ent.Schema
}

func (Section) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.UUID("document_id", uuidZero).Immutable(),
		field.UUID("parent_section_id", uuidZero).Optional().Nillable(),
		field.String("title").Optional().Nillable(),
		field.Int64("order_index").Default(0),
		field.JSON("metadata", documentZero).Default(documentZero),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Section) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("document_id", "order_index"),
		index.Fields("parent_section_id"),
	}
}

func (Section) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "sections"},
	}
}
