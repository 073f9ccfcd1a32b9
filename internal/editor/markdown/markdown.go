// Package markdown implements the canonical Markdown-with-mentions subset
// named in §4.5: a permissive parser into a small block-node tree, and a
// deterministic serializer back to text. No Markdown AST library appears
// anywhere in the retrieved corpus (see DESIGN.md), so this is hand-built
// against the standard library rather than grounded on a third-party parser.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// NodeKind enumerates the block-level node kinds the subset supports.
type NodeKind string

const (
	NodeParagraph NodeKind = "paragraph"
	NodeHeading   NodeKind = "heading"
	NodeCode      NodeKind = "code"
	NodeRule      NodeKind = "hr"
	NodeQuote     NodeKind = "quote"
)

// Node is one block-level element of a parsed document. Text carries
// inline content (including mention literals) for paragraph/heading/quote
// nodes; Lines carries the verbatim content of a fenced code block, which
// is never subject to inline normalization.
type Node struct {
	Kind  NodeKind
	Level int
	Lang  string
	Text  string
	Lines []string
}

// Document is a parsed sequence of block nodes.
type Document struct {
	Nodes []Node
}

var (
	atxHeading     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	setextH1       = regexp.MustCompile(`^=+\s*$`)
	setextH2       = regexp.MustCompile(`^-+\s*$`)
	thematicBreak  = regexp.MustCompile(`^(?:-\s*(?:-\s*){2,}|\*\s*(?:\*\s*){2,}|_\s*(?:_\s*){2,})$`)
	fenceOpen      = regexp.MustCompile("^```\\s*([a-zA-Z0-9_+-]*)\\s*$")
	blockquoteLine = regexp.MustCompile(`^>\s?(.*)$`)
)

// Parse accepts the permissive input side of the subset: standard
// Markdown headings (ATX or setext), fenced code blocks, blockquotes,
// thematic breaks, and paragraphs, normalized into the Node tree.
func Parse(src string) (*Document, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	doc := &Document{}

	var paragraph []string
	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		text := normalizeEmphasis(strings.Join(paragraph, "\n"))
		doc.Nodes = append(doc.Nodes, Node{Kind: NodeParagraph, Text: text})
		paragraph = nil
	}

	var quote []string
	flushQuote := func() {
		if len(quote) == 0 {
			return
		}
		text := normalizeEmphasis(strings.Join(quote, "\n"))
		doc.Nodes = append(doc.Nodes, Node{Kind: NodeQuote, Text: text})
		quote = nil
	}

	i := 0
	for i < len(lines) {
		line := lines[i]

		if m := fenceOpen.FindStringSubmatch(line); m != nil {
			flushParagraph()
			flushQuote()
			lang := m[1]
			var content []string
			i++
			for i < len(lines) && strings.TrimRight(lines[i], " \t") != "```" {
				content = append(content, lines[i])
				i++
			}
			// i now at closing fence or EOF; skip the closing fence.
			if i < len(lines) {
				i++
			}
			doc.Nodes = append(doc.Nodes, Node{Kind: NodeCode, Lang: lang, Lines: content})
			continue
		}

		if m := atxHeading.FindStringSubmatch(line); m != nil {
			flushParagraph()
			flushQuote()
			doc.Nodes = append(doc.Nodes, Node{Kind: NodeHeading, Level: len(m[1]), Text: normalizeEmphasis(strings.TrimSpace(m[2]))})
			i++
			continue
		}

		// Setext heading: a non-blank line followed by a === or --- underline.
		if i+1 < len(lines) && strings.TrimSpace(line) != "" {
			if setextH1.MatchString(lines[i+1]) {
				flushParagraph()
				flushQuote()
				doc.Nodes = append(doc.Nodes, Node{Kind: NodeHeading, Level: 1, Text: normalizeEmphasis(strings.TrimSpace(line))})
				i += 2
				continue
			}
			if setextH2.MatchString(lines[i+1]) && strings.TrimSpace(line) != "" && !thematicBreak.MatchString(line) {
				flushParagraph()
				flushQuote()
				doc.Nodes = append(doc.Nodes, Node{Kind: NodeHeading, Level: 2, Text: normalizeEmphasis(strings.TrimSpace(line))})
				i += 2
				continue
			}
		}

		if thematicBreak.MatchString(strings.TrimSpace(line)) {
			flushParagraph()
			flushQuote()
			doc.Nodes = append(doc.Nodes, Node{Kind: NodeRule})
			i++
			continue
		}

		if m := blockquoteLine.FindStringSubmatch(line); m != nil {
			flushParagraph()
			quote = append(quote, m[1])
			i++
			continue
		}
		flushQuote()

		if strings.TrimSpace(line) == "" {
			flushParagraph()
			i++
			continue
		}

		paragraph = append(paragraph, line)
		i++
	}
	flushParagraph()
	flushQuote()

	return doc, nil
}

// Serialize renders doc back to the canonical textual form: ATX headings,
// a blank line between every block, fenced code blocks with their original
// language tag, and blockquote lines re-prefixed with "> ".
func Serialize(doc *Document) string {
	var b strings.Builder
	for i, n := range doc.Nodes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch n.Kind {
		case NodeHeading:
			b.WriteString(strings.Repeat("#", n.Level))
			b.WriteByte(' ')
			b.WriteString(n.Text)
		case NodeParagraph:
			b.WriteString(n.Text)
		case NodeQuote:
			for j, line := range strings.Split(n.Text, "\n") {
				if j > 0 {
					b.WriteByte('\n')
				}
				b.WriteString("> ")
				b.WriteString(line)
			}
		case NodeRule:
			b.WriteString("---")
		case NodeCode:
			b.WriteString("```")
			b.WriteString(n.Lang)
			b.WriteByte('\n')
			b.WriteString(strings.Join(n.Lines, "\n"))
			b.WriteByte('\n')
			b.WriteString("```")
		}
	}
	return b.String()
}

// Canonicalize parses src and re-serializes it. Applying it twice yields a
// fixed point: the second parse of a canonical string produces the same
// Node tree, so the second serialization is byte-identical to the first
// (§4.5/§8 "round-tripping source_text twice yields a fixed point").
func Canonicalize(src string) (string, error) {
	doc, err := Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse source text: %w", err)
	}
	return Serialize(doc), nil
}

// mentionLiteral matches the atomic mention token {@label|entity:id}. It is
// never touched by emphasis normalization: the label and identifier are
// the writer's data and round-trip bit-exact, resolved or not (§4.5).
var mentionLiteral = regexp.MustCompile(`\{@[^|{}]*\|entity:[^{}]*\}`)

var (
	strongUnderscore = regexp.MustCompile(`__([^_]+)__`)
	emphUnderscore   = regexp.MustCompile(`(^|[^_])_([^_]+)_([^_]|$)`)
)

// normalizeEmphasis unifies emphasis markers to a single pair (** for
// strong, * for plain) per §4.5, without touching mention literals by
// processing only the text segments between them.
func normalizeEmphasis(text string) string {
	segments, mentions := splitMentions(text)
	for i, seg := range segments {
		seg = strongUnderscore.ReplaceAllString(seg, "**$1**")
		seg = emphUnderscore.ReplaceAllString(seg, "$1*$2*$3")
		segments[i] = seg
	}
	return joinMentions(segments, mentions)
}

// splitMentions breaks text into the runs between mention literals plus
// the literals themselves, so transformations can be applied to the runs
// only: len(segments) == len(mentions)+1.
func splitMentions(text string) (segments []string, mentions []string) {
	locs := mentionLiteral.FindAllStringIndex(text, -1)
	last := 0
	for _, loc := range locs {
		segments = append(segments, text[last:loc[0]])
		mentions = append(mentions, text[loc[0]:loc[1]])
		last = loc[1]
	}
	segments = append(segments, text[last:])
	return segments, mentions
}

func joinMentions(segments, mentions []string) string {
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(seg)
		if i < len(mentions) {
			b.WriteString(mentions[i])
		}
	}
	return b.String()
}

// MentionLiterals returns every mention literal occurring verbatim in
// text, in order, for callers that need to enumerate mentions referenced
// by a Block's source_text without a full parse (e.g. the Review pass
// checking for dangling identifiers).
func MentionLiterals(text string) []string {
	return mentionLiteral.FindAllString(text, -1)
}
