// Package document defines the rich-text tree used for note bodies and its
// two lossy projections: flattened plain text and Markdown.
//
// A document is a root holding an ordered sequence of blocks. Blocks and
// inline content are closed tagged unions; converters match exhaustively
// over the variants, with Unknown as the explicit fallback for content
// written by a newer schema.
package document

import "strings"

// Mark is an inline formatting flag carried by a text run.
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
	MarkStrike    Mark = "strike"
	MarkHighlight Mark = "highlight"
	MarkCode      Mark = "code"
)

// Doc is the root of a rich-text document.
type Doc struct {
	Blocks []Block
}

// Block is one top-level (or list-item-nested) content node.
type Block interface {
	blockNode()
}

// Inline is one piece of inline content inside a block.
type Inline interface {
	inlineNode()
}

// Paragraph holds a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

// Heading is a level 1-3 heading.
type Heading struct {
	Level   int
	Inlines []Inline
}

// BulletList is an unordered list.
type BulletList struct {
	Items []ListItem
}

// OrderedList is a numbered list.
type OrderedList struct {
	Items []ListItem
}

// TaskList is a checklist.
type TaskList struct {
	Items []TaskItem
}

// ListItem is one bullet or ordered list entry. Items are expected to hold
// exactly one paragraph-equivalent child; deeper block nesting is preserved
// by the JSON codec but not rendered by the Markdown converter.
type ListItem struct {
	Blocks []Block
}

// TaskItem is one checklist entry.
type TaskItem struct {
	Checked bool
	Blocks  []Block
}

// CodeBlock is a preformatted block. No language attribute is kept.
type CodeBlock struct {
	Text string
}

// Blockquote holds quoted inline content.
type Blockquote struct {
	Inlines []Inline
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// Unknown preserves the type tag of a block kind this build does not
// recognize. Converters skip it; it is not an error.
type Unknown struct {
	Type string
}

func (*Paragraph) blockNode()      {}
func (*Heading) blockNode()        {}
func (*BulletList) blockNode()     {}
func (*OrderedList) blockNode()    {}
func (*TaskList) blockNode()       {}
func (*CodeBlock) blockNode()      {}
func (*Blockquote) blockNode()     {}
func (*HorizontalRule) blockNode() {}
func (*Unknown) blockNode()        {}

// Text is an inline text run carrying zero or more marks.
type Text struct {
	Text  string
	Marks []Mark
}

// HardBreak is an explicit line break inside a block.
type HardBreak struct{}

func (*Text) inlineNode()      {}
func (*HardBreak) inlineNode() {}

// PlainText flattens the document: text runs are concatenated, hard breaks
// become newlines, blocks are separated by a newline. This projection is
// cached on the note record and trusted by search.
func PlainText(d *Doc) string {
	if d == nil {
		return ""
	}
	var parts []string
	for _, b := range d.Blocks {
		parts = append(parts, blockText(b))
	}
	return strings.Join(parts, "\n")
}

func blockText(b Block) string {
	switch v := b.(type) {
	case *Paragraph:
		return inlineText(v.Inlines)
	case *Heading:
		return inlineText(v.Inlines)
	case *BulletList:
		return itemsText(v.Items)
	case *OrderedList:
		return itemsText(v.Items)
	case *TaskList:
		var parts []string
		for _, it := range v.Items {
			var inner []string
			for _, ib := range it.Blocks {
				inner = append(inner, blockText(ib))
			}
			parts = append(parts, strings.Join(inner, "\n"))
		}
		return strings.Join(parts, "\n")
	case *CodeBlock:
		return v.Text
	case *Blockquote:
		return inlineText(v.Inlines)
	case *HorizontalRule:
		return ""
	case *Unknown:
		return ""
	}
	return ""
}

func itemsText(items []ListItem) string {
	var parts []string
	for _, it := range items {
		var inner []string
		for _, ib := range it.Blocks {
			inner = append(inner, blockText(ib))
		}
		parts = append(parts, strings.Join(inner, "\n"))
	}
	return strings.Join(parts, "\n")
}

func inlineText(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch v := in.(type) {
		case *Text:
			sb.WriteString(v.Text)
		case *HardBreak:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FromPlainText builds a single-paragraph document from unformatted text.
// PlainText(FromPlainText(s)) == s for any s without newlines.
func FromPlainText(s string) *Doc {
	if s == "" {
		return &Doc{}
	}
	return &Doc{Blocks: []Block{&Paragraph{Inlines: []Inline{&Text{Text: s}}}}}
}
