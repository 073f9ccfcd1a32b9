package entschema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// EntityLabel holds the schema definition for the entity_labels table, a
// language-specific surface label for a SemanticEntity. At most one label
// per (entity_id, language), enforced by the unique index below.
type EntityLabel struct {
	ent.Schema
}

func (EntityLabel) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidZero).Immutable(),
		field.UUID("entity_id", uuidZero).Immutable(),
		field.String("language").NotEmpty(),
		field.String("base_form").NotEmpty(),
		field.JSON("aliases", []string{}).Default([]string{}),
	}
}

func (EntityLabel) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("entity_id", "language").Unique(),
	}
}

func (EntityLabel) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "entity_labels"},
	}
}
