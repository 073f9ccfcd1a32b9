package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Block holds the schema definition for the blocks table, the atomic
// editable text unit inside a Section.
type Block struct {
	ent.Schema
}

func (Block) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.UUID("section_id", uuidZero).Immutable(),
		field.String("kind").Default("prose"),
		field.String("language").NotEmpty(),
		field.String("source_text").Default(""),
		field.Int64("order_index").Default(0),
		field.JSON("metadata", documentZero).Default(documentZero),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Block) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("section_id", "order_index"),
	}
}

func (Block) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "blocks"},
	}
}
