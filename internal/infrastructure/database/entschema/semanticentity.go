package entschema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SemanticEntity holds the schema definition for the semantic_entities
// table, a referent independent of any Work.
type SemanticEntity struct {
	ent.Schema
}

func (SemanticEntity) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.String("type_tag").NotEmpty(),
		field.String("label").NotEmpty(),
		field.JSON("properties", documentZero).Default(documentZero),
		field.String("status").Default("active"),
		field.String("notes").Optional().Nillable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (SemanticEntity) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("type_tag"),
		index.Fields("label"),
	}
}

func (SemanticEntity) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "semantic_entities"},
	}
}
