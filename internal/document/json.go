// JSON codec for the document tree. The wire shape is the editor's own
// document JSON ({"type":"doc","content":[...]} with per-node "type" tags),
// so databases written by earlier builds decode without migration.
package document

import (
	"encoding/json"
)

type jsonNode struct {
	Type    string     `json:"type"`
	Attrs   *jsonAttrs `json:"attrs,omitempty"`
	Content []jsonNode `json:"content,omitempty"`
	Text    string     `json:"text,omitempty"`
	Marks   []jsonMark `json:"marks,omitempty"`
}

type jsonAttrs struct {
	Level   int   `json:"level,omitempty"`
	Checked *bool `json:"checked,omitempty"`
}

type jsonMark struct {
	Type string `json:"type"`
}

// MarshalJSON implements json.Marshaler.
func (d *Doc) MarshalJSON() ([]byte, error) {
	root := jsonNode{Type: "doc"}
	for _, b := range d.Blocks {
		root.Content = append(root.Content, encodeBlock(b))
	}
	return json.Marshal(root)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Doc) UnmarshalJSON(data []byte) error {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return err
	}
	d.Blocks = nil
	for _, n := range root.Content {
		d.Blocks = append(d.Blocks, decodeBlock(n))
	}
	return nil
}

func encodeBlock(b Block) jsonNode {
	switch v := b.(type) {
	case *Paragraph:
		return jsonNode{Type: "paragraph", Content: encodeInlines(v.Inlines)}
	case *Heading:
		return jsonNode{Type: "heading", Attrs: &jsonAttrs{Level: v.Level}, Content: encodeInlines(v.Inlines)}
	case *BulletList:
		return jsonNode{Type: "bulletList", Content: encodeListItems(v.Items)}
	case *OrderedList:
		return jsonNode{Type: "orderedList", Content: encodeListItems(v.Items)}
	case *TaskList:
		n := jsonNode{Type: "taskList"}
		for _, it := range v.Items {
			checked := it.Checked
			item := jsonNode{Type: "taskItem", Attrs: &jsonAttrs{Checked: &checked}}
			for _, ib := range it.Blocks {
				item.Content = append(item.Content, encodeBlock(ib))
			}
			n.Content = append(n.Content, item)
		}
		return n
	case *CodeBlock:
		n := jsonNode{Type: "codeBlock"}
		if v.Text != "" {
			n.Content = []jsonNode{{Type: "text", Text: v.Text}}
		}
		return n
	case *Blockquote:
		return jsonNode{Type: "blockquote", Content: encodeInlines(v.Inlines)}
	case *HorizontalRule:
		return jsonNode{Type: "horizontalRule"}
	case *Unknown:
		return jsonNode{Type: v.Type}
	}
	return jsonNode{Type: "paragraph"}
}

func encodeListItems(items []ListItem) []jsonNode {
	var out []jsonNode
	for _, it := range items {
		item := jsonNode{Type: "listItem"}
		for _, ib := range it.Blocks {
			item.Content = append(item.Content, encodeBlock(ib))
		}
		out = append(out, item)
	}
	return out
}

func encodeInlines(inlines []Inline) []jsonNode {
	var out []jsonNode
	for _, in := range inlines {
		switch v := in.(type) {
		case *Text:
			n := jsonNode{Type: "text", Text: v.Text}
			for _, m := range v.Marks {
				n.Marks = append(n.Marks, jsonMark{Type: string(m)})
			}
			out = append(out, n)
		case *HardBreak:
			out = append(out, jsonNode{Type: "hardBreak"})
		}
	}
	return out
}

func decodeBlock(n jsonNode) Block {
	switch n.Type {
	case "paragraph":
		return &Paragraph{Inlines: decodeInlines(n.Content)}
	case "heading":
		level := 1
		if n.Attrs != nil && n.Attrs.Level > 0 {
			level = n.Attrs.Level
		}
		return &Heading{Level: level, Inlines: decodeInlines(n.Content)}
	case "bulletList":
		return &BulletList{Items: decodeListItems(n.Content)}
	case "orderedList":
		return &OrderedList{Items: decodeListItems(n.Content)}
	case "taskList":
		tl := &TaskList{}
		for _, c := range n.Content {
			item := TaskItem{}
			if c.Attrs != nil && c.Attrs.Checked != nil {
				item.Checked = *c.Attrs.Checked
			}
			for _, cb := range c.Content {
				item.Blocks = append(item.Blocks, decodeBlock(cb))
			}
			tl.Items = append(tl.Items, item)
		}
		return tl
	case "codeBlock":
		cb := &CodeBlock{}
		if len(n.Content) > 0 {
			cb.Text = n.Content[0].Text
		}
		return cb
	case "blockquote":
		return &Blockquote{Inlines: decodeInlines(n.Content)}
	case "horizontalRule":
		return &HorizontalRule{}
	}
	return &Unknown{Type: n.Type}
}

func decodeListItems(nodes []jsonNode) []ListItem {
	var out []ListItem
	for _, n := range nodes {
		item := ListItem{}
		for _, c := range n.Content {
			item.Blocks = append(item.Blocks, decodeBlock(c))
		}
		out = append(out, item)
	}
	return out
}

// decodeInlines reads inline content. Editors wrap blockquote bodies in
// paragraphs; those are flattened here with hard breaks between them.
func decodeInlines(nodes []jsonNode) []Inline {
	var out []Inline
	for _, n := range nodes {
		switch n.Type {
		case "text":
			t := &Text{Text: n.Text}
			for _, m := range n.Marks {
				t.Marks = append(t.Marks, Mark(m.Type))
			}
			out = append(out, t)
		case "hardBreak":
			out = append(out, &HardBreak{})
		case "paragraph":
			if len(out) > 0 {
				out = append(out, &HardBreak{})
			}
			out = append(out, decodeInlines(n.Content)...)
		}
	}
	return out
}
