package entity

import "time"

// Doc is an ordered child of a Work (§3 "Document": ordered child of a
// Work). Named Doc rather than Document to avoid colliding with the
// entity.Document tagged-document bag value type in shared.go — the same
// accommodation made for SemanticEntity (see DESIGN.md).
type Doc struct {
	ID         ID
	WorkID     ID
	CreatedAt  time.Time
	Title      string
	OrderIndex int64
	Metadata   Document
}
