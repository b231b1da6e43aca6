package dom

import "bytes"

// The tokenizer/tree builder: a single recursive-descent pass over the input
// bytes, appending nodes to the arena as they are discovered. Malformed
// markup never fails the parse; it is absorbed as text or skipped as stray.

// contentEnd tells an element why its child scan stopped.
type contentEnd uint8

const (
	endOfInput       contentEnd = iota
	closedByEndTag              // matching end tag consumed
	closedByAncestor            // end tag of an ancestor seen; cursor left at '<'
)

type parser struct {
	in   []byte
	pos  int
	doc  *Document
	opts ParseOptions

	// names is the stack of open element tag names, outermost first. It
	// drives the lenient end-tag policy: an end tag matching the top closes
	// it, one matching a deeper entry returns to the parent unconsumed, and
	// anything else is skipped as stray markup.
	names [][]byte
}

func (p *parser) parse() {
	p.parseContent(nilHandle, 1)
}

// parseContent scans child nodes for parent until the input ends or an end
// tag closes the scan. depth is the nesting depth of the children produced.
func (p *parser) parseContent(parent NodeHandle, depth uint32) contentEnd {
	for p.pos < len(p.in) {
		if p.in[p.pos] != '<' {
			p.parseText(parent)
			continue
		}
		if p.pos+1 >= len(p.in) {
			// lone '<' at end of input becomes text
			p.appendText(parent, p.pos, len(p.in))
			p.pos = len(p.in)
			break
		}
		switch c := p.in[p.pos+1]; {
		case c == '/':
			if len(p.names) == 0 {
				p.skipStrayTag()
				continue
			}
			nameStart := p.pos + 2
			nameEnd := p.scanTagName(nameStart)
			name := p.in[nameStart:nameEnd]
			if equalFold(name, p.names[len(p.names)-1]) {
				p.pos = nameEnd
				p.consumeThroughGT()
				return closedByEndTag
			}
			if p.matchesOpenAncestor(name) {
				return closedByAncestor
			}
			p.skipStrayTag()
		case c == '!' || c == '?':
			p.parseMarkupDecl(parent)
		case isASCIILetter(c):
			p.parseElement(parent, depth)
		default:
			// '<' followed by anything else is character data
			p.parseText(parent)
		}
	}
	return endOfInput
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// parseText collects bytes up to the next '<'. When called at a '<' that did
// not open markup, the '<' itself is part of the run.
func (p *parser) parseText(parent NodeHandle) {
	start := p.pos
	search := p.pos
	if p.in[search] == '<' {
		search++
	}
	end := findAny(p.in, search, '<', '<', '<', '<')
	p.appendText(parent, start, end)
	p.pos = end
}

func (p *parser) appendText(parent NodeHandle, start, end int) {
	if end <= start {
		return
	}
	h := p.doc.arena.push(Node{
		Type:   TextNode,
		parent: parent,
		data:   borrowBytes(p.in[start:end]),
	})
	p.link(parent, h)
}

// link attaches h to its parent's child list, or to the root list.
func (p *parser) link(parent, h NodeHandle) {
	if parent == nilHandle {
		p.doc.roots = append(p.doc.roots, h)
		return
	}
	p.doc.arena.at(parent).children.push(h)
}

// matchesOpenAncestor reports whether name closes an element below the top of
// the open stack.
func (p *parser) matchesOpenAncestor(name []byte) bool {
	for i := len(p.names) - 2; i >= 0; i-- {
		if equalFold(name, p.names[i]) {
			return true
		}
	}
	return false
}

// skipStrayTag discards an end tag that matches no open element.
func (p *parser) skipStrayTag() {
	p.pos += 2 // "</"
	p.consumeThroughGT()
}

// consumeThroughGT advances past the next '>', or to end of input.
func (p *parser) consumeThroughGT() {
	i := findAny(p.in, p.pos, '>', '>', '>', '>')
	if i < len(p.in) {
		i++
	}
	p.pos = i
}

// scanTagName returns the end of a tag name starting at pos: anything up to
// whitespace, '/', or '>'.
func (p *parser) scanTagName(pos int) int {
	for pos < len(p.in) {
		c := p.in[pos]
		if asciiSpace[c] || c == '/' || c == '>' {
			return pos
		}
		pos++
	}
	return pos
}

func (p *parser) parseElement(parent NodeHandle, depth uint32) {
	start := uint32(p.pos)
	p.pos++ // '<'
	nameStart := p.pos
	p.pos = p.scanTagName(p.pos)
	name := p.in[nameStart:p.pos]

	h := p.doc.arena.push(Node{
		Type:   ElementNode,
		parent: parent,
		data:   borrowBytes(name),
		bounds: Span{Start: start},
	})
	p.link(parent, h)

	attrs, selfClose := p.parseAttrs()
	if p.opts.TrackIDs {
		if id, ok := attrs.ID(); ok {
			p.doc.ids[id.String()] = h
		}
	}
	nd := p.doc.arena.at(h)
	nd.attrs = attrs

	tag := tagAtom(name)
	if selfClose || isVoidTag(tag) {
		nd.bounds.End = uint32(p.pos)
		nd.boundsOK = true
		return
	}
	if isRawTextTag(tag) {
		p.parseRawText(h, name)
		nd = p.doc.arena.at(h)
		nd.bounds.End = uint32(p.pos)
		nd.boundsOK = true
		return
	}
	if depth >= p.opts.MaxDepth {
		// nesting ceiling: close the child list immediately so pathological
		// inputs cannot exhaust the stack
		nd.boundsOK = false
		return
	}

	p.names = append(p.names, name)
	p.parseContent(h, depth+1)
	p.names = p.names[:len(p.names)-1]

	// whether the scan ended on our own end tag, an ancestor's, or end of
	// input, the cursor marks where this element's markup stops
	nd = p.doc.arena.at(h)
	nd.bounds.End = uint32(p.pos)
	nd.boundsOK = true
}

// parseAttrs scans the attribute area of an open tag, leaving the cursor just
// past the closing '>' (or at end of input). selfClose reports a '/' before
// the '>', with only whitespace between them.
func (p *parser) parseAttrs() (attrs Attributes, selfClose bool) {
	for {
		p.pos = skipSpace(p.in, p.pos)
		if p.pos >= len(p.in) {
			return attrs, false
		}
		switch p.in[p.pos] {
		case '>':
			p.pos++
			return attrs, false
		case '/':
			p.pos++
			p.pos = skipSpace(p.in, p.pos)
			if p.pos < len(p.in) && p.in[p.pos] == '>' {
				p.pos++
				return attrs, true
			}
			continue
		}

		keyStart := p.pos
		p.pos = p.scanAttrKey(p.pos)
		if p.pos == keyStart {
			// byte that can neither start a key nor end the tag
			p.pos++
			continue
		}
		key := borrowBytes(p.in[keyStart:p.pos])

		p.pos = skipSpace(p.in, p.pos)
		if p.pos >= len(p.in) || p.in[p.pos] != '=' {
			attrs.put(key, Bytes{}, false)
			continue
		}
		p.pos++ // '='
		p.pos = skipSpace(p.in, p.pos)

		var val Bytes
		if p.pos < len(p.in) && (p.in[p.pos] == '"' || p.in[p.pos] == '\'') {
			q := p.in[p.pos]
			p.pos++
			vs := p.pos
			ve := findAny(p.in, p.pos, q, q, q, q)
			val = borrowBytes(p.in[vs:ve])
			p.pos = ve
			if p.pos < len(p.in) {
				p.pos++ // closing quote
			}
		} else {
			vs := p.pos
			for p.pos < len(p.in) {
				c := p.in[p.pos]
				if asciiSpace[c] || c == '/' || c == '>' {
					break
				}
				p.pos++
			}
			val = borrowBytes(p.in[vs:p.pos])
		}
		attrs.put(key, val, true)
	}
}

// scanAttrKey returns the end of an attribute key starting at pos: anything
// up to whitespace, '=', '/', or '>'.
func (p *parser) scanAttrKey(pos int) int {
	for pos < len(p.in) {
		c := p.in[pos]
		if asciiSpace[c] || c == '=' || c == '/' || c == '>' {
			return pos
		}
		pos++
	}
	return pos
}

// parseRawText consumes the content of a raw-text element (script, style,
// textarea, title) up to its case-insensitive close tag. The content becomes
// a single text child; the close tag is consumed.
func (p *parser) parseRawText(h NodeHandle, name []byte) {
	start := p.pos
	search := p.pos
	for {
		i := findAny(p.in, search, '<', '<', '<', '<')
		if i >= len(p.in) {
			// unclosed: everything to end of input is content
			p.appendText(h, start, len(p.in))
			p.pos = len(p.in)
			return
		}
		if p.isCloseTagAt(i, name) {
			p.appendText(h, start, i)
			p.pos = i + 2 + len(name)
			p.consumeThroughGT()
			return
		}
		search = i + 1
	}
}

// isCloseTagAt reports whether the input at pos is "</name" followed by a
// tag-ending byte, case-insensitively.
func (p *parser) isCloseTagAt(pos int, name []byte) bool {
	end := pos + 2 + len(name)
	if end > len(p.in) || p.in[pos+1] != '/' {
		return false
	}
	if !equalFold(p.in[pos+2:end], name) {
		return false
	}
	if end == len(p.in) {
		return true
	}
	c := p.in[end]
	return asciiSpace[c] || c == '>' || c == '/'
}

// parseMarkupDecl handles "<!" and "<?" forms: comments, CDATA, doctypes and
// other declarations. The node carries the full markup bytes. A bare "<!" or
// "<?" at end of input degrades to text so the scan always terminates.
func (p *parser) parseMarkupDecl(parent NodeHandle) {
	start := p.pos
	switch {
	case matchFold(p.in, p.pos, "<!--"):
		end := p.terminatorEnd(p.pos+4, "-->")
		p.appendMarkup(parent, CommentNode, start, end)
	case matchFold(p.in, p.pos, "<![CDATA["):
		end := p.terminatorEnd(p.pos+9, "]]>")
		p.appendMarkup(parent, CDataNode, start, end)
	case matchFold(p.in, p.pos, "<!DOCTYPE"):
		p.pos += 9
		p.consumeThroughGT()
		p.appendMarkup(parent, DoctypeNode, start, p.pos)
	default:
		if p.pos+2 >= len(p.in) {
			p.appendText(parent, start, len(p.in))
			p.pos = len(p.in)
			return
		}
		p.pos += 2
		p.consumeThroughGT()
		p.appendMarkup(parent, DeclarationNode, start, p.pos)
	}
}

// terminatorEnd finds the end of a block closed by term, or end of input,
// and advances the cursor there.
func (p *parser) terminatorEnd(from int, term string) int {
	i := bytes.Index(p.in[from:], []byte(term))
	if i < 0 {
		p.pos = len(p.in)
	} else {
		p.pos = from + i + len(term)
	}
	return p.pos
}

func (p *parser) appendMarkup(parent NodeHandle, t NodeType, start, end int) {
	h := p.doc.arena.push(Node{
		Type:   t,
		parent: parent,
		data:   borrowBytes(p.in[start:end]),
	})
	p.link(parent, h)
}
