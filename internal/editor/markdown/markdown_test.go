package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCanonicalize_FixedPoint covers §4.5/§8's "round-tripping source_text
// twice yields a fixed point" property: Canonicalize(Canonicalize(src)) ==
// Canonicalize(src) for every node kind the subset supports.
func TestCanonicalize_FixedPoint(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"paragraph", "a plain paragraph of text"},
		{"heading", "## A Heading"},
		{"setext heading", "A Heading\n---------"},
		{"code block", "```go\nfunc main() {}\n```"},
		{"blockquote", "> first line\n> second line"},
		{"thematic break", "---"},
		{"mixed document", "# Title\n\nSome *intro* text.\n\n> a quote\n> spanning lines\n\n```python\nprint(1)\n```"},
		{"mention literal", "See {@Paris|entity:abc-123} for details."},
		{"emphasis underscores", "this is _emphasis_ and __strong__ text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, err := Canonicalize(tc.src)
			require.NoError(t, err)

			second, err := Canonicalize(first)
			require.NoError(t, err)

			assert.Equal(t, first, second, "canonicalizing a canonical document must not change it")
		})
	}
}

func TestParse_Blockquote(t *testing.T) {
	doc, err := Parse("> line one\n> line two")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, NodeQuote, doc.Nodes[0].Kind)
	assert.Equal(t, "line one\nline two", doc.Nodes[0].Text)
}

func TestSerialize_BlockquotePrefixesEveryLine(t *testing.T) {
	doc := &Document{Nodes: []Node{{Kind: NodeQuote, Text: "line one\nline two"}}}
	got := Serialize(doc)
	assert.Equal(t, "> line one\n> line two", got)
}

func TestParse_HeadingLevels(t *testing.T) {
	doc, err := Parse("### Level Three")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, NodeHeading, doc.Nodes[0].Kind)
	assert.Equal(t, 3, doc.Nodes[0].Level)
	assert.Equal(t, "Level Three", doc.Nodes[0].Text)
}

func TestParse_CodeBlockPreservesLinesVerbatim(t *testing.T) {
	doc, err := Parse("```go\n  indented_stays();\nsecond line\n```")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, NodeCode, doc.Nodes[0].Kind)
	assert.Equal(t, "go", doc.Nodes[0].Lang)
	assert.Equal(t, []string{"  indented_stays();", "second line"}, doc.Nodes[0].Lines)
}

func TestNormalizeEmphasis_SkipsMentionLiterals(t *testing.T) {
	doc, err := Parse("a _mention_ {@under_scored|entity:1} stays untouched")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Contains(t, doc.Nodes[0].Text, "*mention*")
	assert.Contains(t, doc.Nodes[0].Text, "{@under_scored|entity:1}")
}

func TestMentionLiterals(t *testing.T) {
	text := "See {@Paris|entity:1} and also {@France|entity:2}."
	got := MentionLiterals(text)
	assert.Equal(t, []string{"{@Paris|entity:1}", "{@France|entity:2}"}, got)
}

func TestParse_ThematicBreak(t *testing.T) {
	doc, err := Parse("above\n\n---\n\nbelow")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, NodeParagraph, doc.Nodes[0].Kind)
	assert.Equal(t, NodeRule, doc.Nodes[1].Kind)
	assert.Equal(t, NodeParagraph, doc.Nodes[2].Kind)
}
