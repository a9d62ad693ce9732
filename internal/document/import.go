package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// FromMarkdown parses Markdown source into a document tree. The mapping is
// the lossy inverse of ToMarkdown: only the block kinds this model knows
// are produced, links and images collapse to their text, and underline and
// highlight marks have no Markdown source form. Anything else becomes an
// Unknown block.
func FromMarkdown(src string) *Doc {
	md := goldmark.New(goldmark.WithExtensions(extension.TaskList, extension.Strikethrough))
	source := []byte(src)
	root := md.Parser().Parse(text.NewReader(source))

	doc := &Doc{}
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		doc.Blocks = append(doc.Blocks, importBlock(c, source))
	}
	return doc
}

func importBlock(n ast.Node, source []byte) Block {
	switch v := n.(type) {
	case *ast.Heading:
		level := v.Level
		if level > 3 {
			level = 3
		}
		return &Heading{Level: level, Inlines: importInlines(v, source, nil)}
	case *ast.Paragraph:
		return &Paragraph{Inlines: importInlines(v, source, nil)}
	case *ast.TextBlock:
		return &Paragraph{Inlines: importInlines(v, source, nil)}
	case *ast.List:
		return importList(v, source)
	case *ast.FencedCodeBlock:
		return &CodeBlock{Text: codeLines(v, source)}
	case *ast.CodeBlock:
		return &CodeBlock{Text: codeLines(v, source)}
	case *ast.Blockquote:
		return &Blockquote{Inlines: importQuote(v, source)}
	case *ast.ThematicBreak:
		return &HorizontalRule{}
	}
	return &Unknown{Type: n.Kind().String()}
}

// importList maps an ast.List to a bullet, ordered or task list. A list
// whose first item starts with a checkbox is treated as a task list.
func importList(l *ast.List, source []byte) Block {
	if hasCheckbox(l.FirstChild()) {
		tl := &TaskList{}
		for item := l.FirstChild(); item != nil; item = item.NextSibling() {
			ti := TaskItem{}
			for b := item.FirstChild(); b != nil; b = b.NextSibling() {
				ti.Blocks = append(ti.Blocks, importBlock(b, source))
			}
			ti.Checked = itemChecked(item)
			tl.Items = append(tl.Items, ti)
		}
		return tl
	}

	var items []ListItem
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		li := ListItem{}
		for b := item.FirstChild(); b != nil; b = b.NextSibling() {
			li.Blocks = append(li.Blocks, importBlock(b, source))
		}
		items = append(items, li)
	}
	if l.IsOrdered() {
		return &OrderedList{Items: items}
	}
	return &BulletList{Items: items}
}

func hasCheckbox(item ast.Node) bool {
	if item == nil {
		return false
	}
	first := item.FirstChild()
	if first == nil {
		return false
	}
	_, ok := first.FirstChild().(*east.TaskCheckBox)
	return ok
}

func itemChecked(item ast.Node) bool {
	first := item.FirstChild()
	if first == nil {
		return false
	}
	if cb, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		return cb.IsChecked
	}
	return false
}

// importQuote flattens the paragraphs of a blockquote into one inline run
// with hard breaks between them, matching the model's blockquote shape.
func importQuote(q *ast.Blockquote, source []byte) []Inline {
	var out []Inline
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		if len(out) > 0 {
			out = append(out, &HardBreak{})
		}
		out = append(out, importInlines(c, source, nil)...)
	}
	return out
}

func codeLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// importInlines converts the inline children of n, carrying the active
// mark stack down through emphasis and strikethrough wrappers.
func importInlines(n ast.Node, source []byte, marks []Mark) []Inline {
	var out []Inline
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			t := string(v.Segment.Value(source))
			if v.SoftLineBreak() {
				t += " "
			}
			out = append(out, &Text{Text: t, Marks: marks})
			if v.HardLineBreak() {
				out = append(out, &HardBreak{})
			}
		case *ast.Emphasis:
			m := MarkItalic
			if v.Level >= 2 {
				m = MarkBold
			}
			out = append(out, importInlines(v, source, append(marks[:len(marks):len(marks)], m))...)
		case *ast.CodeSpan:
			out = append(out, &Text{Text: string(v.Text(source)), Marks: append(marks[:len(marks):len(marks)], MarkCode)})
		case *east.Strikethrough:
			out = append(out, importInlines(v, source, append(marks[:len(marks):len(marks)], MarkStrike))...)
		case *east.TaskCheckBox:
			// handled by importList
		default:
			// links, images and other inline wrappers collapse to their text
			out = append(out, importInlines(c, source, marks)...)
		}
	}
	return out
}
