package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litteralabs/littera/internal/entity"
)

func newContainer(text string) *Container {
	return &Container{
		ID:       entity.NewID(),
		Kind:     entity.BlockKindProse,
		Language: entity.Language("en"),
		Nodes:    []ContentNode{{Kind: NodeParagraph, Text: text}},
	}
}

func TestDiff_Classification(t *testing.T) {
	clean := newContainer("stays clean")
	updatedOld := newContainer("before edit")
	deleted := newContainer("goes away")

	saved := &Document{SectionID: entity.NewID(), Containers: []*Container{clean, updatedOld, deleted}}

	updatedNew := &Container{ID: updatedOld.ID, Kind: updatedOld.Kind, Language: updatedOld.Language,
		Nodes: []ContentNode{{Kind: NodeParagraph, Text: "after edit"}}}
	created := newContainer("brand new")

	current := &Document{SectionID: saved.SectionID, Containers: []*Container{clean, updatedNew, created}}

	diff := Diff(saved, current)

	assert.Equal(t, DirtyClean, diff[clean.ID])
	assert.Equal(t, DirtyUpdate, diff[updatedOld.ID])
	assert.Equal(t, DirtyCreate, diff[created.ID])
	assert.Equal(t, DirtyDelete, diff[deleted.ID])
}

// TestDiff_PointerIdenticalCopyIsStillUpdate guards the reference-identity
// contract directly: a container holding the exact same field values as the
// saved one, but built as a distinct value, is still classified as an
// update because Diff never compares by content.
func TestDiff_ContentIdenticalCopyIsStillUpdate(t *testing.T) {
	id := entity.NewID()
	original := &Container{ID: id, Kind: entity.BlockKindProse, Nodes: []ContentNode{{Kind: NodeParagraph, Text: "same text"}}}
	copy := &Container{ID: id, Kind: entity.BlockKindProse, Nodes: []ContentNode{{Kind: NodeParagraph, Text: "same text"}}}

	saved := &Document{Containers: []*Container{original}}
	current := &Document{Containers: []*Container{copy}}

	diff := Diff(saved, current)
	assert.Equal(t, DirtyUpdate, diff[id])
}

func TestReplaceContainer_LeavesOthersReferenceEqual(t *testing.T) {
	a, b := newContainer("a"), newContainer("b")
	doc := New(entity.NewID(), []*Container{a, b})

	replacement := &Container{ID: a.ID, Kind: a.Kind, Language: a.Language,
		Nodes: []ContentNode{{Kind: NodeParagraph, Text: "a, edited"}}}
	next := doc.ReplaceContainer(a.ID, replacement)

	require.Len(t, next.Containers, 2)
	assert.Same(t, replacement, next.Containers[0])
	assert.Same(t, b, next.Containers[1], "untouched containers must remain the same pointer")
}

func TestSplit_CreatesNewContainerFromTail(t *testing.T) {
	orig := newContainer("head and tail")
	doc := New(entity.NewID(), []*Container{orig})

	newID := entity.NewID()
	head := []ContentNode{{Kind: NodeParagraph, Text: "head"}}
	tail := []ContentNode{{Kind: NodeParagraph, Text: "tail"}}
	next := doc.Split(orig.ID, head, tail, newID)

	require.Len(t, next.Containers, 2)
	assert.Equal(t, orig.ID, next.Containers[0].ID)
	assert.Equal(t, head, next.Containers[0].Nodes)
	assert.Equal(t, newID, next.Containers[1].ID)
	assert.Equal(t, tail, next.Containers[1].Nodes)
}

func TestJoin_KeepsPrecedingIdentifierKindAndLanguage(t *testing.T) {
	first := &Container{ID: entity.NewID(), Kind: entity.BlockKindProse, Language: entity.Language("en"),
		Nodes: []ContentNode{{Kind: NodeParagraph, Text: "first"}}}
	second := &Container{ID: entity.NewID(), Kind: entity.BlockKindProse, Language: entity.Language("pl"),
		Nodes: []ContentNode{{Kind: NodeParagraph, Text: "second"}}}
	doc := New(entity.NewID(), []*Container{first, second})

	next := doc.Join(second.ID)

	require.Len(t, next.Containers, 1)
	merged := next.Containers[0]
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, first.Language, merged.Language)
	assert.Equal(t, []ContentNode{{Kind: NodeParagraph, Text: "first"}, {Kind: NodeParagraph, Text: "second"}}, merged.Nodes)
}

func TestJoin_OnFirstContainerIsNoOp(t *testing.T) {
	only := newContainer("alone")
	doc := New(entity.NewID(), []*Container{only})
	next := doc.Join(only.ID)
	assert.Same(t, doc, next)
}

func TestDelete_LastContainerLeavesOneEmptyReplacement(t *testing.T) {
	only := newContainer("only one")
	doc := New(entity.NewID(), []*Container{only})

	next := doc.Delete(only.ID)

	require.Len(t, next.Containers, 1)
	assert.NotEqual(t, only.ID, next.Containers[0].ID)
	assert.Equal(t, entity.BlockKindProse, next.Containers[0].Kind)
}

func TestDelete_NonLastContainerRemovesIt(t *testing.T) {
	a, b := newContainer("a"), newContainer("b")
	doc := New(entity.NewID(), []*Container{a, b})

	next := doc.Delete(a.ID)

	require.Len(t, next.Containers, 1)
	assert.Same(t, b, next.Containers[0])
}

func TestFromBlock_ToSourceText_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		kind entity.BlockKind
		src  string
	}{
		{"prose with blockquote", entity.BlockKindProse, "# Heading\n\n> quoted line one\n> quoted line two\n\nparagraph text"},
		{"code keeps lines verbatim", entity.BlockKindCode, "func main() {\n\tprintln(\"hi\")\n}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &entity.Block{ID: entity.NewID(), Kind: tc.kind, Language: entity.Language("en"), SourceText: tc.src}
			b.Normalize()

			container, err := FromBlock(b)
			require.NoError(t, err)
			assert.Equal(t, b.ID, container.ID)

			first, err := ToSourceText(container)
			require.NoError(t, err)

			reparsed, err := FromBlock(&entity.Block{ID: b.ID, Kind: tc.kind, Language: b.Language, SourceText: first})
			require.NoError(t, err)

			second, err := ToSourceText(reparsed)
			require.NoError(t, err)

			assert.Equal(t, first, second, "FromBlock/ToSourceText must reach a fixed point")
		})
	}
}

func TestToBlock_NormalizesSerializedText(t *testing.T) {
	c := &Container{ID: entity.NewID(), Kind: entity.BlockKindProse, Language: entity.Language("en"),
		Nodes: []ContentNode{{Kind: NodeParagraph, Text: "trailing space  "}}}

	b, err := ToBlock(c, entity.NewID(), 1, entity.Document{})
	require.NoError(t, err)
	assert.Equal(t, "trailing space", b.SourceText)
	assert.Equal(t, c.ID, b.ID)
	assert.Equal(t, int64(1), b.OrderIndex)
}
