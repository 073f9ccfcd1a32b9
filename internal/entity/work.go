package entity

import "time"

// Work is the bounded intellectual artifact at the root of the hierarchy
// (§3 "Work owns Documents; Document owns Sections; Section owns Blocks").
type Work struct {
	ID          ID
	CreatedAt   time.Time
	Title       string
	Description string
	Language    Language
	Metadata    Document
}
