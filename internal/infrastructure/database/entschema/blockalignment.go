package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// BlockAlignment holds the schema definition for the block_alignments
// table, a derived cross-language relation between two Blocks.
// Many-to-many is permitted, so there is no uniqueness index on the pair.
type BlockAlignment struct {
	ent.Schema
}

func (BlockAlignment) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.UUID("source_block_id", uuidZero).Immutable(),
		field.UUID("target_block_id", uuidZero).Immutable(),
		field.String("kind").NotEmpty(),
		field.Float("confidence").Default(0),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (BlockAlignment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("source_block_id"),
		index.Fields("target_block_id"),
	}
}

func (BlockAlignment) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "block_alignments"},
	}
}
