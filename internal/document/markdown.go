package document

import (
	"fmt"
	"strings"
)

// ToMarkdown renders the document as Markdown text, trimmed of surrounding
// whitespace. The projection is lossy: list items render only the first
// inline run of their first block child (deeper nesting inside items is a
// known limitation of this converter), and unrecognized block kinds are
// skipped.
func ToMarkdown(d *Doc) string {
	if d == nil {
		return ""
	}
	var md strings.Builder
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			if len(v.Inlines) > 0 {
				md.WriteString(renderInline(v.Inlines) + "\n\n")
			} else {
				md.WriteString("\n")
			}
		case *Heading:
			md.WriteString(strings.Repeat("#", v.Level) + " " + renderInline(v.Inlines) + "\n\n")
		case *BulletList:
			for _, it := range v.Items {
				md.WriteString("- " + firstRun(it.Blocks) + "\n")
			}
			md.WriteString("\n")
		case *OrderedList:
			for i, it := range v.Items {
				md.WriteString(fmt.Sprintf("%d. ", i+1) + firstRun(it.Blocks) + "\n")
			}
			md.WriteString("\n")
		case *TaskList:
			for _, it := range v.Items {
				box := "[ ]"
				if it.Checked {
					box = "[x]"
				}
				md.WriteString("- " + box + " " + firstRun(it.Blocks) + "\n")
			}
			md.WriteString("\n")
		case *CodeBlock:
			md.WriteString("```\n" + v.Text + "\n```\n\n")
		case *Blockquote:
			quote := renderInline(v.Inlines)
			md.WriteString("> " + strings.Join(strings.Split(quote, "\n"), "\n> ") + "\n\n")
		case *HorizontalRule:
			md.WriteString("---\n\n")
		case *Unknown:
			// forward-compatibility: newer block kinds are not an error
		}
	}
	return strings.TrimSpace(md.String())
}

// firstRun returns the text of the first inline run of the first block
// child, the only part of a list item this converter renders.
func firstRun(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}
	var inlines []Inline
	switch v := blocks[0].(type) {
	case *Paragraph:
		inlines = v.Inlines
	case *Heading:
		inlines = v.Inlines
	case *Blockquote:
		inlines = v.Inlines
	default:
		return ""
	}
	if len(inlines) == 0 {
		return ""
	}
	if t, ok := inlines[0].(*Text); ok {
		return t.Text
	}
	return ""
}

// renderInline renders a run of inline content, composing marks by
// sequential wrapping in mark list order.
func renderInline(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch v := in.(type) {
		case *Text:
			t := v.Text
			for _, m := range v.Marks {
				switch m {
				case MarkBold:
					t = "**" + t + "**"
				case MarkItalic:
					t = "*" + t + "*"
				case MarkUnderline:
					t = "<u>" + t + "</u>"
				case MarkStrike:
					t = "~~" + t + "~~"
				case MarkHighlight:
					t = "==" + t + "=="
				case MarkCode:
					t = "`" + t + "`"
				}
			}
			sb.WriteString(t)
		case *HardBreak:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
