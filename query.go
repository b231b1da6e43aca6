package dom

import "bytes"

// The selector matcher: walks candidate elements in document order and tests
// the rightmost compound against each, then the remaining compounds greedily
// right-to-left against the candidate's ancestor chain.

// QueryIter yields the handles of matching elements in document order, each
// at most once. Each Next call tests candidates in order, each against its
// parent chain, until one matches or the candidates run out.
type QueryIter struct {
	d   *Document
	sel *Selector

	next    NodeHandle   // next arena index, whole-document scans
	stack   []NodeHandle // pending handles, subtree scans
	subtree bool
}

// Query iterates matches over the whole document.
func (d *Document) Query(sel *Selector) *QueryIter {
	return &QueryIter{d: d, sel: sel}
}

// QueryFrom iterates matches among the transitive descendants of element
// root. root itself is never yielded, but ancestors outside the subtree
// still participate in descendant-combinator matching.
func (d *Document) QueryFrom(root NodeHandle, sel *Selector) *QueryIter {
	it := &QueryIter{d: d, sel: sel, subtree: true}
	if n := d.arena.at(root); n != nil && n.Type == ElementNode {
		kids := n.children.view()
		for i := len(kids) - 1; i >= 0; i-- {
			it.stack = append(it.stack, kids[i])
		}
	}
	return it
}

// Next returns the next matching handle; ok is false when the iteration is
// exhausted.
func (it *QueryIter) Next() (NodeHandle, bool) {
	if it.subtree {
		for len(it.stack) > 0 {
			h := it.stack[len(it.stack)-1]
			it.stack = it.stack[:len(it.stack)-1]
			n := it.d.arena.at(h)
			if n == nil {
				continue
			}
			kids := n.children.view()
			for i := len(kids) - 1; i >= 0; i-- {
				it.stack = append(it.stack, kids[i])
			}
			if n.Type == ElementNode && it.d.matches(n, it.sel) {
				return h, true
			}
		}
		return 0, false
	}
	for int(it.next) < it.d.arena.len() {
		h := it.next
		it.next++
		n := &it.d.arena.nodes[h]
		if n.Type == ElementNode && it.d.matches(n, it.sel) {
			return h, true
		}
	}
	return 0, false
}

// Collect drains the iterator into a slice.
func (it *QueryIter) Collect() []NodeHandle {
	var out []NodeHandle
	for h, ok := it.Next(); ok; h, ok = it.Next() {
		out = append(out, h)
	}
	return out
}

// QuerySelectorAll compiles sel and returns every matching handle in
// document order.
func (d *Document) QuerySelectorAll(sel string) ([]NodeHandle, error) {
	s, err := CompileSelector(sel)
	if err != nil {
		return nil, err
	}
	return d.Query(s).Collect(), nil
}

// QuerySelector compiles sel and returns the first match in document order.
func (d *Document) QuerySelector(sel string) (NodeHandle, bool, error) {
	s, err := CompileSelector(sel)
	if err != nil {
		return 0, false, err
	}
	h, ok := d.Query(s).Next()
	return h, ok, nil
}

// matches tests a chain C1 C2 ... Ck against n: Ck must match n, and some
// ancestor chain must satisfy C1..C(k-1) in order.
func (d *Document) matches(n *Node, sel *Selector) bool {
	cs := sel.compounds
	if len(cs) == 0 {
		return false
	}
	if !matchCompound(n, &cs[len(cs)-1]) {
		return false
	}
	cur := n.parent
	for i := len(cs) - 2; i >= 0; i-- {
		found := false
		for cur != nilHandle {
			pn := d.arena.at(cur)
			if pn == nil {
				break
			}
			up := pn.parent
			if pn.Type == ElementNode && matchCompound(pn, &cs[i]) {
				found = true
				cur = up
				break
			}
			cur = up
		}
		if !found {
			return false
		}
	}
	return true
}

func matchCompound(n *Node, c *compound) bool {
	if c.tag != "" && !equalFoldString(n.data.raw, c.tag) {
		return false
	}
	if c.hasID {
		id, ok := n.attrs.ID()
		if !ok || string(id.raw) != c.id {
			return false
		}
	}
	for _, cl := range c.classes {
		if !n.attrs.IsClassMember(cl) {
			return false
		}
	}
	for i := range c.attrs {
		if !matchAttrCheck(&n.attrs, &c.attrs[i]) {
			return false
		}
	}
	return true
}

func matchAttrCheck(a *Attributes, ac *attrCheck) bool {
	i := a.find(ac.key)
	if i < 0 {
		return false
	}
	if ac.op == attrOpPresent {
		return true
	}
	e := a.at(i)
	if !e.HasValue {
		return false
	}
	v := e.Value.raw
	switch ac.op {
	case attrOpEquals:
		return string(v) == ac.val
	case attrOpIncludes:
		if ac.val == "" {
			return false
		}
		pos := 0
		for pos < len(v) {
			pos = skipSpace(v, pos)
			start := pos
			for pos < len(v) && !asciiSpace[v[pos]] {
				pos++
			}
			if pos-start == len(ac.val) && string(v[start:pos]) == ac.val {
				return true
			}
		}
		return false
	case attrOpDashMatch:
		if string(v) == ac.val {
			return true
		}
		return len(v) > len(ac.val) && v[len(ac.val)] == '-' &&
			string(v[:len(ac.val)]) == ac.val
	case attrOpPrefix:
		return ac.val != "" && len(v) >= len(ac.val) &&
			string(v[:len(ac.val)]) == ac.val
	case attrOpSuffix:
		return ac.val != "" && len(v) >= len(ac.val) &&
			string(v[len(v)-len(ac.val):]) == ac.val
	case attrOpContains:
		return ac.val != "" && bytes.Contains(v, ac.valb)
	}
	return false
}
