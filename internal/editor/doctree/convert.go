package doctree

import (
	"strings"

	"github.com/litteralabs/littera/internal/editor/markdown"
	"github.com/litteralabs/littera/internal/entity"
)

// FromBlock parses a Block's canonical source_text into a Container,
// preserving the Block's identifier, kind, and language. Code blocks
// forbid inline marks and mention nodes (§4.5), so their body is kept
// verbatim as Lines on a single NodeCode node rather than parsed for
// inline content.
func FromBlock(b *entity.Block) (*Container, error) {
	c := &Container{ID: b.ID, Kind: b.Kind, Language: b.Language}
	if b.Kind == entity.BlockKindCode {
		c.Nodes = []ContentNode{{Kind: NodeCode, Lines: strings.Split(b.SourceText, "\n")}}
		return c, nil
	}
	doc, err := markdown.Parse(b.SourceText)
	if err != nil {
		return nil, err
	}
	for _, n := range doc.Nodes {
		c.Nodes = append(c.Nodes, fromMarkdownNode(n))
	}
	return c, nil
}

func fromMarkdownNode(n markdown.Node) ContentNode {
	switch n.Kind {
	case markdown.NodeHeading:
		return ContentNode{Kind: NodeHeading, Level: n.Level, Text: n.Text}
	case markdown.NodeQuote:
		return ContentNode{Kind: NodeQuote, Text: n.Text}
	case markdown.NodeRule:
		return ContentNode{Kind: NodeRule}
	case markdown.NodeCode:
		return ContentNode{Kind: NodeCode, Lang: n.Lang, Lines: n.Lines}
	default:
		return ContentNode{Kind: NodeParagraph, Text: n.Text}
	}
}

// ToSourceText serializes a Container back to canonical Markdown, the
// inverse of FromBlock. Applying FromBlock then ToSourceText twice must
// reach a fixed point (§4.5/§8), which it does because it delegates
// entirely to markdown.Canonicalize for non-code containers.
func ToSourceText(c *Container) (string, error) {
	if c.Kind == entity.BlockKindCode {
		if len(c.Nodes) == 0 {
			return "", nil
		}
		return strings.Join(c.Nodes[0].Lines, "\n"), nil
	}
	var parts []string
	for _, n := range c.Nodes {
		parts = append(parts, toMarkdownText(n))
	}
	return markdown.Canonicalize(strings.Join(parts, "\n\n"))
}

func toMarkdownText(n ContentNode) string {
	switch n.Kind {
	case NodeHeading:
		return strings.Repeat("#", n.Level) + " " + n.Text
	case NodeRule:
		return "---"
	case NodeCode:
		return "```" + n.Lang + "\n" + strings.Join(n.Lines, "\n") + "\n```"
	case NodeQuote:
		var lines []string
		for _, line := range strings.Split(n.Text, "\n") {
			lines = append(lines, "> "+line)
		}
		return strings.Join(lines, "\n")
	case NodeMention:
		return "{@" + n.Label + "|entity:" + n.EntityID.String() + "}"
	default:
		return n.Text
	}
}

// ToBlock serializes a Container into an entity.Block ready for
// Create/Update, carrying over sectionID, orderIndex, and metadata from
// the caller since the doctree model doesn't track them.
func ToBlock(c *Container, sectionID entity.ID, orderIndex int64, metadata entity.Document) (*entity.Block, error) {
	src, err := ToSourceText(c)
	if err != nil {
		return nil, err
	}
	b := &entity.Block{
		ID: c.ID, SectionID: sectionID, Kind: c.Kind, Language: c.Language,
		SourceText: src, OrderIndex: orderIndex, Metadata: metadata,
	}
	b.Normalize()
	return b, nil
}
