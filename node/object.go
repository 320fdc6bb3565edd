package node

import "go.jsondoc.dev/jsondoc/keytable"

// ObjectLen returns the number of members. Only meaningful for KindObject.
func (n *Node) ObjectLen() int { return len(n.members) }

// Members returns the object's members, in insertion order. The caller
// must not mutate the returned slice.
func (n *Node) Members() []Member { return n.members }

// Keys returns the object's member names, in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.members))
	for i, m := range n.members {
		keys[i] = m.Handle.Name()
	}

	return keys
}

// Get looks up a member by name. Only meaningful for KindObject.
func (n *Node) Get(name string) (*Node, bool) {
	pos, ok := n.objectPos(name)
	if !ok {
		return nil, false
	}

	return n.members[pos].Value, true
}

// Set inserts or replaces the member named name. Returns true if a member
// with that name already existed (its value is replaced, not its
// position). New members are interned through tbl.
func (n *Node) Set(tbl *keytable.Table, name string, v *Node) bool {
	if pos, ok := n.objectPos(name); ok {
		n.members[pos].Value = v

		return true
	}

	h := tbl.Intern(name)
	n.members = append(n.members, Member{Handle: h, Value: v})
	n.invalidateIndex()

	return false
}

// Delete removes the member named name, releasing its interned handle.
// Returns true if the member existed.
func (n *Node) Delete(tbl *keytable.Table, name string) bool {
	pos, ok := n.objectPos(name)
	if !ok {
		return false
	}

	tbl.Release(n.members[pos].Handle)
	n.members = append(n.members[:pos], n.members[pos+1:]...)
	n.invalidateIndex()

	return true
}

// ClearObject empties the object in place, releasing every member handle
// along with whatever interned handles are nested inside each member's
// value.
func (n *Node) ClearObject(tbl *keytable.Table) {
	for _, m := range n.members {
		tbl.Release(m.Handle)
		Release(tbl, m.Value)
	}

	n.members = nil
	n.index = nil
}

func (n *Node) objectPos(name string) (int, bool) {
	n.ensureIndex()

	if n.index != nil {
		pos, ok := n.index[name]

		return pos, ok
	}

	for i, m := range n.members {
		if m.Handle.Name() == name {
			return i, true
		}
	}

	return -1, false
}

func (n *Node) ensureIndex() {
	if n.index != nil || len(n.members) < n.effectiveHashMin() {
		return
	}

	n.index = make(map[string]int, len(n.members))
	for i, m := range n.members {
		n.index[m.Handle.Name()] = i
	}
}

func (n *Node) invalidateIndex() {
	n.index = nil
}

func (n *Node) effectiveHashMin() int {
	if n.hashMin > 0 {
		return n.hashMin
	}

	return DefaultHashTableMinSize
}

// UsesIndex reports whether the object currently maintains the auxiliary
// name->position index, for JSON.DEBUG introspection.
func (n *Node) UsesIndex() bool {
	n.ensureIndex()

	return n.index != nil
}
