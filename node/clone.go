package node

import "go.jsondoc.dev/jsondoc/keytable"

// Clone deep-copies n, retaining a new reference to every interned member
// handle along the way. The command layer clones the whole document before
// mutating it so a write that turns out to violate a limit, or that fails
// partway through a multi-cursor operation, can be discarded with [Release]
// while the original root remains untouched and visible to other readers.
func Clone(tbl *keytable.Table, n *Node) *Node {
	if n == nil {
		return nil
	}

	c := &Node{
		kind:    n.kind,
		boolVal: n.boolVal,
		intVal:  n.intVal,
		numVal:  n.numVal,
		lexical: n.lexical,
		strVal:  n.strVal,
		hashMin: n.hashMin,
	}

	if n.items != nil {
		c.items = make([]*Node, len(n.items))
		for i, it := range n.items {
			c.items[i] = Clone(tbl, it)
		}
	}

	if n.members != nil {
		c.members = make([]Member, len(n.members))
		for i, m := range n.members {
			c.members[i] = Member{
				Handle: tbl.Retain(m.Handle),
				Value:  Clone(tbl, m.Value),
			}
		}
	}

	return c
}

// Release walks n and every descendant, releasing each object member's
// interned handle. Call it on a document's root when the document is
// destroyed (JSON.DEL on the root path, key eviction) or when a speculative
// clone is discarded instead of committed.
func Release(tbl *keytable.Table, n *Node) {
	if n == nil {
		return
	}

	for _, it := range n.items {
		Release(tbl, it)
	}

	for _, m := range n.members {
		tbl.Release(m.Handle)
		Release(tbl, m.Value)
	}
}
