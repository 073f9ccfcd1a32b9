package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Document holds the schema definition for the documents table (the ordered
// child of a Work; see entity.Doc for the naming accommodation).
type Document struct {
	ent.Schema
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.UUID("work_id", uuidZero).Immutable(),
		field.String("title").Optional().Nillable(),
		field.Int64("order_index").Default(0),
		field.JSON("metadata", documentZero).Default(documentZero),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("work_id", "order_index"),
	}
}

func (Document) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "documents"},
	}
}
