package entschema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// EntityWorkMetadata holds the schema definition for the
// entity_work_metadata table, a per-Work overlay on a SemanticEntity. Its
// primary key is the (entity_id, work_id) pair, expressed here as a
// composite unique index over two plain columns rather than ent's ID field.
type EntityWorkMetadata struct {
	ent.Schema
}

func (EntityWorkMetadata) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.UUID("entity_id", uuidZero).Immutable(),
		field.UUID("work_id", uuidZero).Immutable(),
		field.String("notes").Optional().Nillable(),
		field.JSON("metadata", documentZero).Default(documentZero),
	}
}

func (EntityWorkMetadata) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("entity_id", "work_id").Unique(),
	}
}

func (EntityWorkMetadata) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "entity_work_metadata"},
	}
}
