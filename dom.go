// Package dom implements a fast, lenient, zero-copy HTML parser and an
// arena-backed document model with id and CSS-like selector lookups.
//
// The parser is a browser-style best-effort tokenizer, not a conformant HTML5
// implementation: malformed markup is preserved as text or skipped, never
// reported. Nodes borrow windows of the input wherever possible and are
// addressed through stable 32-bit handles.
package dom

import "math"

// DefaultMaxDepth is the element nesting ceiling applied when ParseOptions
// leaves MaxDepth zero.
const DefaultMaxDepth = 256

// ParseOptions configure a parse.
type ParseOptions struct {
	// TrackIDs populates the id index during parsing, making GetElementByID
	// a hash lookup. On duplicate ids the last writer wins. The index is
	// filled at parse time only: setting an id attribute afterwards does not
	// update it.
	TrackIDs bool

	// MaxDepth bounds element nesting. Elements at the ceiling have their
	// child lists closed immediately and their boundaries invalidated.
	// Zero means DefaultMaxDepth.
	MaxDepth uint32
}

// DefaultParseOptions returns the options used by Parse.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{TrackIDs: true, MaxDepth: DefaultMaxDepth}
}

// Document is the in-memory model produced by a parse: the node arena, the
// ordered list of root handles and the id index. It borrows the input slice
// for the lifetime of the document.
type Document struct {
	input []byte
	arena arena
	roots []NodeHandle
	ids   map[string]NodeHandle
}

// Parse builds a Document from HTML bytes with DefaultParseOptions. The only
// failure is ErrInputTooLong; malformed markup is absorbed, not reported.
func Parse(input []byte) (*Document, error) {
	return ParseWithOptions(input, DefaultParseOptions())
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(input []byte, opts ParseOptions) (*Document, error) {
	if uint64(len(input)) > math.MaxUint32 {
		return nil, ErrInputTooLong
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	d := &Document{input: input}
	if opts.TrackIDs {
		d.ids = make(map[string]NodeHandle)
	}
	p := parser{in: input, doc: d, opts: opts}
	p.parse()
	return d, nil
}

// Input returns the bytes the document was parsed from.
func (d *Document) Input() []byte { return d.input }

// Nodes returns every parsed node in arena order, which equals document
// (pre-)order of first-seen tags. The slice is a view into the arena.
func (d *Document) Nodes() []Node { return d.arena.nodes }

// Roots returns the top-level handles in document order.
func (d *Document) Roots() []NodeHandle { return d.roots }

// Resolve returns the node for h, or ErrBadHandle.
func (d *Document) Resolve(h NodeHandle) (*Node, error) {
	n := d.arena.at(h)
	if n == nil {
		return nil, ErrBadHandle
	}
	return n, nil
}

// Element resolves h and requires an element node.
func (d *Document) Element(h NodeHandle) (*Node, error) {
	n := d.arena.at(h)
	if n == nil {
		return nil, ErrBadHandle
	}
	if n.Type != ElementNode {
		return nil, ErrTypeMismatch
	}
	return n, nil
}

// GetElementByID returns the element whose id attribute equals id. With id
// tracking enabled this is a hash lookup; otherwise it scans the arena.
func (d *Document) GetElementByID(id string) (NodeHandle, bool) {
	if d.ids != nil {
		h, ok := d.ids[id]
		return h, ok
	}
	found := nilHandle
	for i := range d.arena.nodes {
		n := &d.arena.nodes[i]
		if n.Type != ElementNode {
			continue
		}
		if v, ok := n.attrs.ID(); ok && v.String() == id {
			found = NodeHandle(i) // keep scanning: last writer wins
		}
	}
	return found, found != nilHandle
}

// GetElementsByClassName returns, in document order, the elements whose class
// attribute contains name as a whitespace-separated member.
func (d *Document) GetElementsByClassName(name string) []NodeHandle {
	var out []NodeHandle
	for i := range d.arena.nodes {
		n := &d.arena.nodes[i]
		if n.Type == ElementNode && n.attrs.IsClassMember(name) {
			out = append(out, NodeHandle(i))
		}
	}
	return out
}

// Attributes returns the attribute store of element h for reading.
func (d *Document) Attributes(h NodeHandle) (*Attributes, error) {
	n, err := d.Element(h)
	if err != nil {
		return nil, err
	}
	return &n.attrs, nil
}

// MutateAttributes returns the attribute store of element h for writing. The
// boundary offsets of h and all its ancestors are invalidated, so later
// markup recomputation serializes instead of slicing the stale input.
func (d *Document) MutateAttributes(h NodeHandle) (*Attributes, error) {
	n, err := d.Element(h)
	if err != nil {
		return nil, err
	}
	d.invalidate(h)
	return &n.attrs, nil
}

func (d *Document) invalidate(h NodeHandle) {
	for h != nilHandle {
		n := d.arena.at(h)
		if n == nil {
			return
		}
		n.boundsOK = false
		h = n.parent
	}
}

// ChildrenTop returns the direct child handles of element h in document
// order. The slice is a view; it must not be appended to.
func (d *Document) ChildrenTop(h NodeHandle) []NodeHandle {
	n := d.arena.at(h)
	if n == nil || n.Type != ElementNode {
		return nil
	}
	return n.children.view()
}

// ChildrenAll returns the transitive descendants of element h in pre-order.
func (d *Document) ChildrenAll(h NodeHandle) []NodeHandle {
	n := d.arena.at(h)
	if n == nil || n.Type != ElementNode {
		return nil
	}
	var out []NodeHandle
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children.view() {
			out = append(out, c)
			if cn := d.arena.at(c); cn != nil {
				walk(cn)
			}
		}
	}
	walk(n)
	return out
}

// NewElement appends a detached element node to the arena. Its boundaries are
// invalid from the start; markup for it is always serialized.
func (d *Document) NewElement(tag string) NodeHandle {
	return d.arena.push(Node{
		Type:   ElementNode,
		parent: nilHandle,
		data:   OwnBytes([]byte(tag)),
	})
}

// NewText appends a detached text node to the arena.
func (d *Document) NewText(text []byte) NodeHandle {
	return d.arena.push(Node{
		Type:   TextNode,
		parent: nilHandle,
		data:   OwnBytes(text),
	})
}

// AppendChild attaches a detached node as the last child of element parent
// and invalidates the boundaries of parent and its ancestors.
func (d *Document) AppendChild(parent, child NodeHandle) error {
	pn, err := d.Element(parent)
	if err != nil {
		return err
	}
	cn := d.arena.at(child)
	if cn == nil {
		return ErrBadHandle
	}
	cn.parent = parent
	pn.children.push(child)
	d.invalidate(parent)
	return nil
}
