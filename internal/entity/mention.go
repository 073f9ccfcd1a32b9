package entity

import "time"

// Mention attaches a SemanticEntity to a Block in a specific language, with
// grammatical features describing the mention's intent and an optional
// observed surface form. Uniqueness invariant: at most one Mention per
// (Block, Entity, Language).
type Mention struct {
	ID         ID
	BlockID    ID
	EntityID   ID
	Language   Language
	Features   Document
	Surface    string
	CreatedAt  time.Time
}
