package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Mention holds the schema definition for the mentions table. At most one
// per (block_id, entity_id, language), enforced by the unique index below.
type Mention struct {
	ent.Schema
}

func (Mention) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.UUID("block_id", uuidZero).Immutable(),
		field.UUID("entity_id", uuidZero).Immutable(),
		field.String("language").NotEmpty(),
		field.JSON("features", documentZero).Default(documentZero),
		field.String("surface").Default(""),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Mention) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("block_id", "entity_id", "language").Unique(),
		index.Fields("entity_id"),
	}
}

func (Mention) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "mentions"},
	}
}
