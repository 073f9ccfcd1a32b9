package entity

import (
	"strings"
	"time"
)

// BlockKind is the enumerated editor vocabulary (prose/code/heading/...).
// Per §3 "the enumerated vocabulary is recorded in metadata, not schema" —
// BlockKind is a plain string, validated at the Command Surface / editor
// boundary rather than constrained by the storage schema.
type BlockKind string

const (
	BlockKindProse     BlockKind = "prose"
	BlockKindHeading    BlockKind = "heading"
	BlockKindCode      BlockKind = "code"
	BlockKindQuote     BlockKind = "quote"
	BlockKindListItem  BlockKind = "list_item"
)

// Block is the atomic editable text unit inside a Section.
type Block struct {
	ID         ID
	SectionID  ID
	CreatedAt  time.Time
	Kind       BlockKind
	Language   Language
	SourceText string
	OrderIndex int64
	Metadata   Document
}

// Normalize trims the stored source text's trailing whitespace per line
// without otherwise altering content, so repeated saves of an unchanged
// block produce byte-identical source_text (§8 round-trip fixed point).
func (b *Block) Normalize() {
	lines := strings.Split(b.SourceText, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	b.SourceText = strings.Join(lines, "\n")
}
