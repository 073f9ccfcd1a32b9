package entity

import "time"

// EntityStatus tags an entity's lifecycle state (active, merged, deprecated).
type EntityStatus string

const (
	EntityStatusActive     EntityStatus = "active"
	EntityStatusMerged     EntityStatus = "merged"
	EntityStatusDeprecated EntityStatus = "deprecated"
)

// SemanticEntity is a semantic referent independent of any Work — a person,
// place, concept, or other recurring referent a Mention can point at.
// Named SemanticEntity (not Entity) to avoid colliding with Go's own
// "entity" package vocabulary once repository/command layers import this
// package as `entity.Entity` — see DESIGN.md.
type SemanticEntity struct {
	ID         ID
	CreatedAt  time.Time
	TypeTag    string
	Label      string
	Properties Document
	Status     EntityStatus
	Notes      string
}

// EntityLabel is a language-specific surface label for a SemanticEntity.
// Uniqueness invariant: at most one EntityLabel per (Entity, Language).
type EntityLabel struct {
	ID       ID
	EntityID ID
	Language Language
	BaseForm string
	Aliases  []string
}

// EntityWorkMetadata is a per-Work overlay on a SemanticEntity: notes or
// metadata scoped to one Work without altering the global entity. Its
// primary key is the (Entity, Work) pair.
type EntityWorkMetadata struct {
	EntityID ID
	WorkID   ID
	Notes    string
	Metadata Document
}
