// Package doctree implements the Block Editor Core's document model (§4.5):
// a Section-scoped tree with exactly one root whose children are ordered,
// isolating block containers, each wrapping one Block's content nodes.
//
// The tree is immutable: every mutating function returns a new Document
// value sharing unchanged Container pointers with its predecessor. Dirty
// detection compares containers by reference identity first (see Diff),
// matching the structural-sharing discipline the teacher's generated code
// already assumes for ent-backed entities, generalized here to an in-memory
// editing model with no teacher precedent to adapt directly.
package doctree

import "github.com/litteralabs/littera/internal/entity"

// NodeKind enumerates the content nodes a Container may hold.
type NodeKind string

const (
	NodeParagraph NodeKind = "paragraph"
	NodeHeading   NodeKind = "heading"
	NodeCode      NodeKind = "code"
	NodeRule      NodeKind = "hr"
	NodeQuote     NodeKind = "quote"
	NodeMention   NodeKind = "mention"
)

// ContentNode is one node inside a Container. Text nodes (and inline runs
// inside paragraphs/headings) carry Text; Mention nodes are atomic and
// carry EntityID/Label instead; Code containers hold their body as Lines
// rather than nested nodes.
type ContentNode struct {
	Kind     NodeKind
	Level    int // heading depth
	Text     string
	EntityID entity.ID // NodeMention only
	Label    string    // NodeMention only: cached display label
	Lang     string    // NodeCode only: fence language tag
	Lines    []string  // NodeCode only
}

// Container wraps exactly one Block's content and enforces boundary
// isolation: splitting, joining, and backspace-at-start operations never
// cross into a neighboring Container (§4.5). Container values are never
// mutated in place once built — every edit produces a new *Container,
// which is why reference identity is a valid dirty-detection signal.
type Container struct {
	ID       entity.ID
	Kind     entity.BlockKind
	Language entity.Language
	Nodes    []ContentNode
}

// Document is the Section-scoped editor tree: exactly one root ordered by
// Containers. The zero value is not valid; use New.
type Document struct {
	SectionID  entity.ID
	Containers []*Container
}

// New builds a Document from a Section's Blocks, ordered as given. An
// empty blocks slice still yields a valid Document with one empty
// container, satisfying the "always at least one container" invariant.
func New(sectionID entity.ID, containers []*Container) *Document {
	if len(containers) == 0 {
		containers = []*Container{EmptyContainer(entity.NewID(), entity.LanguageUnspecified)}
	}
	return &Document{SectionID: sectionID, Containers: containers}
}

// EmptyContainer builds a single empty prose paragraph container, the
// replacement inserted whenever the last container in a Document would
// otherwise be deleted.
func EmptyContainer(id entity.ID, lang entity.Language) *Container {
	return &Container{
		ID:       id,
		Kind:     entity.BlockKindProse,
		Language: lang,
		Nodes:    []ContentNode{{Kind: NodeParagraph, Text: ""}},
	}
}

// indexOf returns the position of id among containers, or -1.
func (d *Document) indexOf(id entity.ID) int {
	for i, c := range d.Containers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ReplaceContainer returns a new Document with the container at id swapped
// for replacement, leaving every other container pointer untouched (so
// unrelated containers remain reference-equal to the prior Document, per
// the structural-sharing dirty-detection contract).
func (d *Document) ReplaceContainer(id entity.ID, replacement *Container) *Document {
	i := d.indexOf(id)
	if i < 0 {
		return d
	}
	next := make([]*Container, len(d.Containers))
	copy(next, d.Containers)
	next[i] = replacement
	return &Document{SectionID: d.SectionID, Containers: next}
}

// Split implements the explicit split command (§4.5): it creates a brand
// new Container carrying newContainerID, taking tailNodes from the
// original container and leaving headNodes behind. Regular newlines must
// never call Split; they append a content node within the existing
// Container instead.
func (d *Document) Split(id entity.ID, headNodes, tailNodes []ContentNode, newContainerID entity.ID) *Document {
	i := d.indexOf(id)
	if i < 0 {
		return d
	}
	orig := d.Containers[i]
	head := &Container{ID: orig.ID, Kind: orig.Kind, Language: orig.Language, Nodes: headNodes}
	tail := &Container{ID: newContainerID, Kind: orig.Kind, Language: orig.Language, Nodes: tailNodes}

	next := make([]*Container, 0, len(d.Containers)+1)
	next = append(next, d.Containers[:i]...)
	next = append(next, head, tail)
	next = append(next, d.Containers[i+1:]...)
	return &Document{SectionID: d.SectionID, Containers: next}
}

// Join merges the container at id with the one immediately before it,
// concatenating content nodes, and is only ever invoked by an explicit
// join command: a join never fires itself from a boundary-backspace,
// since Containers are isolating (§4.5 "a backspace at a container start
// does not merge with the previous container"). The joined container
// keeps the PRECEDING container's identifier, kind, and language; the
// following container's identifier is retired (delete+create semantics,
// per the "stable non-null identifier" invariant).
func (d *Document) Join(id entity.ID) *Document {
	i := d.indexOf(id)
	if i <= 0 {
		return d
	}
	prev := d.Containers[i-1]
	cur := d.Containers[i]
	merged := &Container{
		ID:       prev.ID,
		Kind:     prev.Kind,
		Language: prev.Language,
		Nodes:    append(append([]ContentNode{}, prev.Nodes...), cur.Nodes...),
	}
	next := make([]*Container, 0, len(d.Containers)-1)
	next = append(next, d.Containers[:i-1]...)
	next = append(next, merged)
	next = append(next, d.Containers[i+1:]...)
	return &Document{SectionID: d.SectionID, Containers: next}
}

// Delete removes the container at id. If it is the last remaining
// container, a fresh empty replacement is inserted in its place rather
// than leaving the Document with zero containers (§4.5 "the document
// always has at least one container").
func (d *Document) Delete(id entity.ID) *Document {
	i := d.indexOf(id)
	if i < 0 {
		return d
	}
	if len(d.Containers) == 1 {
		return &Document{SectionID: d.SectionID, Containers: []*Container{EmptyContainer(entity.NewID(), d.Containers[0].Language)}}
	}
	next := make([]*Container, 0, len(d.Containers)-1)
	next = append(next, d.Containers[:i]...)
	next = append(next, d.Containers[i+1:]...)
	return &Document{SectionID: d.SectionID, Containers: next}
}

// Insert adds a brand new container at position index (clamped to the
// valid range), used by structural commands that replace a node with a
// horizontal rule plus a fresh empty node, or by append-at-end editing.
func (d *Document) Insert(index int, c *Container) *Document {
	if index < 0 {
		index = 0
	}
	if index > len(d.Containers) {
		index = len(d.Containers)
	}
	next := make([]*Container, 0, len(d.Containers)+1)
	next = append(next, d.Containers[:index]...)
	next = append(next, c)
	next = append(next, d.Containers[index:]...)
	return &Document{SectionID: d.SectionID, Containers: next}
}

// DirtyKind classifies a container's state relative to a prior snapshot.
type DirtyKind string

const (
	DirtyCreate DirtyKind = "create"
	DirtyUpdate DirtyKind = "update"
	DirtyClean  DirtyKind = "clean"
	DirtyDelete DirtyKind = "delete"
)

// Diff compares the current Document against a saved snapshot and
// classifies every container per §4.5's dirty-block rule: absent from the
// snapshot is a create; present and reference-identical is clean; present
// but a different pointer is an update; present in the snapshot but
// missing from current is a delete. The returned map is keyed by
// container identifier; deletes are reported as DirtyDelete.
func Diff(saved, current *Document) map[entity.ID]DirtyKind {
	savedByID := make(map[entity.ID]*Container, len(saved.Containers))
	for _, c := range saved.Containers {
		savedByID[c.ID] = c
	}
	seen := make(map[entity.ID]bool, len(current.Containers))
	result := make(map[entity.ID]DirtyKind, len(current.Containers))

	for _, c := range current.Containers {
		seen[c.ID] = true
		old, ok := savedByID[c.ID]
		switch {
		case !ok:
			result[c.ID] = DirtyCreate
		case old == c:
			result[c.ID] = DirtyClean
		default:
			result[c.ID] = DirtyUpdate
		}
	}
	for id := range savedByID {
		if !seen[id] {
			result[id] = DirtyDelete
		}
	}
	return result
}
