package dom

import (
	"bytes"

	"golang.org/x/net/html"
)

// Markup recomputation. While an element's boundaries are valid its markup is
// a direct slice of the input; after a mutation the subtree is re-serialized
// with double-quoted, escaped attribute values.

// OuterHTML returns the markup of node h, including the element's own tags.
func (d *Document) OuterHTML(h NodeHandle) []byte {
	n := d.arena.at(h)
	if n == nil {
		return nil
	}
	if n.Type == ElementNode && n.boundsOK {
		return n.bounds.Slice(d.input)
	}
	var buf bytes.Buffer
	d.render(&buf, n)
	return buf.Bytes()
}

// InnerHTML returns the concatenated markup of h's children, excluding the
// element's own tags.
func (d *Document) InnerHTML(h NodeHandle) []byte {
	n := d.arena.at(h)
	if n == nil || n.Type != ElementNode {
		return nil
	}
	var buf bytes.Buffer
	for _, c := range n.children.view() {
		if cn := d.arena.at(c); cn != nil {
			d.render(&buf, cn)
		}
	}
	return buf.Bytes()
}

// InnerText returns the concatenated character data of h's text descendants,
// entities undecoded. Markup declarations contribute nothing.
func (d *Document) InnerText(h NodeHandle) []byte {
	n := d.arena.at(h)
	if n == nil {
		return nil
	}
	var buf bytes.Buffer
	d.renderText(&buf, n)
	return buf.Bytes()
}

// Raw returns the element's [start, end) input slice while its boundaries
// are valid.
func (d *Document) Raw(h NodeHandle) ([]byte, bool) {
	n := d.arena.at(h)
	if n == nil || n.Type != ElementNode || !n.boundsOK {
		return nil, false
	}
	return n.bounds.Slice(d.input), true
}

// Boundaries returns the element's window in input coordinates; ok is false
// once the element or a descendant has been mutated.
func (d *Document) Boundaries(h NodeHandle) (Span, bool) {
	n := d.arena.at(h)
	if n == nil {
		return Span{}, false
	}
	return n.Boundaries()
}

func (d *Document) render(buf *bytes.Buffer, n *Node) {
	switch n.Type {
	case TextNode, CommentNode, CDataNode, DoctypeNode, DeclarationNode:
		buf.Write(n.data.raw)
	case ElementNode:
		if n.boundsOK {
			buf.Write(n.bounds.Slice(d.input))
			return
		}
		buf.WriteByte('<')
		buf.Write(n.data.raw)
		for i := range n.attrs.Entries() {
			a := &n.attrs.Entries()[i]
			buf.WriteByte(' ')
			buf.Write(a.Key.raw)
			if a.HasValue {
				buf.WriteString(`="`)
				buf.WriteString(html.EscapeString(a.Value.String()))
				buf.WriteByte('"')
			}
		}
		buf.WriteByte('>')
		if isVoidTag(tagAtom(n.data.raw)) && n.children.len() == 0 {
			return
		}
		for _, c := range n.children.view() {
			if cn := d.arena.at(c); cn != nil {
				d.render(buf, cn)
			}
		}
		buf.WriteString("</")
		buf.Write(n.data.raw)
		buf.WriteByte('>')
	}
}

func (d *Document) renderText(buf *bytes.Buffer, n *Node) {
	switch n.Type {
	case TextNode:
		buf.Write(n.data.raw)
	case ElementNode:
		for _, c := range n.children.view() {
			if cn := d.arena.at(c); cn != nil {
				d.renderText(buf, cn)
			}
		}
	}
}
