package dom

// NodeHandle is a stable 32-bit index into the document's node arena. Nodes
// are never removed, so handles do not shift for the lifetime of a parse.
type NodeHandle uint32

// nilHandle marks the absence of a node (e.g. the parent of a root).
const nilHandle = ^NodeHandle(0)

// NodeType discriminates the node variants stored in the arena.
type NodeType uint8

const (
	// ElementNode is a tag with attributes and children.
	ElementNode NodeType = iota
	// TextNode is a run of character data; entities are kept undecoded.
	TextNode
	// CommentNode holds the full markup of a `<!-- -->` block.
	CommentNode
	// CDataNode holds the full markup of a `<![CDATA[ ]]>` block.
	CDataNode
	// DoctypeNode holds the full markup of a `<!DOCTYPE >` declaration.
	DoctypeNode
	// DeclarationNode holds any other `<!` or `<?` markup declaration.
	DeclarationNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case CDataNode:
		return "cdata"
	case DoctypeNode:
		return "doctype"
	case DeclarationNode:
		return "declaration"
	}
	return "unknown"
}

// Most elements have few children, so the list keeps up to inlineChildren
// handles in a fixed array and spills to a heap slice past that.
const inlineChildren = 4

type childList struct {
	inline [inlineChildren]NodeHandle
	n      uint8
	spill  []NodeHandle // all handles, once spilled
}

func (l *childList) push(h NodeHandle) {
	if l.spill != nil {
		l.spill = append(l.spill, h)
		return
	}
	if int(l.n) < inlineChildren {
		l.inline[l.n] = h
		l.n++
		return
	}
	l.spill = make([]NodeHandle, int(l.n), inlineChildren*2)
	copy(l.spill, l.inline[:l.n])
	l.spill = append(l.spill, h)
	l.n = 0
}

func (l *childList) len() int {
	if l.spill != nil {
		return len(l.spill)
	}
	return int(l.n)
}

// view returns the handles in document order as a slice into the list.
func (l *childList) view() []NodeHandle {
	if l.spill != nil {
		return l.spill
	}
	return l.inline[:l.n]
}

// Node is one parsed node. Element nodes carry a tag name, attributes,
// children and the boundary span of their markup in the input; all other
// variants carry character data only.
type Node struct {
	Type NodeType

	parent   NodeHandle
	data     Bytes // element: tag name; other variants: character data
	attrs    Attributes
	children childList
	bounds   Span
	boundsOK bool
}

// TagName returns the element's tag name, or a zero Bytes for non-elements.
func (n *Node) TagName() Bytes {
	if n.Type != ElementNode {
		return Bytes{}
	}
	return n.data
}

// Data returns the node's character data. For elements this is the tag name.
func (n *Node) Data() Bytes { return n.data }

// Parent returns the parent handle; ok is false for root nodes.
func (n *Node) Parent() (NodeHandle, bool) {
	if n.parent == nilHandle {
		return 0, false
	}
	return n.parent, true
}

// Attributes returns the element's attribute store for reading. Mutate
// through Document.MutateAttributes so boundary offsets are invalidated.
func (n *Node) Attributes() *Attributes { return &n.attrs }

// Boundaries returns the element's [start, end) window in the input. ok is
// false for non-elements and for elements whose markup no longer matches the
// input because the element or a descendant was mutated.
func (n *Node) Boundaries() (Span, bool) {
	if n.Type != ElementNode || !n.boundsOK {
		return Span{}, false
	}
	return n.bounds, true
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return n.children.len() }
