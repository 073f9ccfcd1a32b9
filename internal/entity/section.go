package entity

import "time"

// Section is a hierarchical child of a Doc; it may nest under another
// Section belonging to the same Doc (§3 "may be nested under another
// Section in the same Document").
type Section struct {
	ID         ID
	DocumentID ID
	ParentID   *ID
	CreatedAt  time.Time
	Title      string
	OrderIndex int64
	Metadata   Document
}
