package node

import "go.jsondoc.dev/jsondoc/keytable"

// Step names how to reach a child from its parent: either an array index
// or an object member name. Representing cursors this way -- rather than
// cyclic parent pointers on Node itself -- keeps the tree an acyclic
// downward forest and ownership simple.
type Step struct {
	Name   string
	Index  int
	IsName bool
}

// NameStep returns a Step addressing an object member.
func NameStep(name string) Step { return Step{Name: name, IsName: true} }

// IndexStep returns a Step addressing an array element.
func IndexStep(idx int) Step { return Step{Index: idx} }

// Cursor locates a node by its parent and the step from that parent to it.
// Path evaluation produces cursors for every matched position; the command
// layer resolves, mutates, or deletes through them. The document root has
// no cursor of its own -- operations addressing the root path are handled
// directly by the command layer.
type Cursor struct {
	Parent *Node
	Step   Step
}

// Get resolves the cursor to its current value. Returns false if the step
// no longer addresses anything in Parent, which can happen when several
// cursors into the same array are being deleted and an earlier deletion
// shifted later indices.
func (c Cursor) Get() (*Node, bool) {
	if c.Step.IsName {
		return c.Parent.Get(c.Step.Name)
	}

	return c.Parent.At(c.Step.Index)
}

// Set overwrites the cursor's target in place, inserting a new member if
// Step names one that does not yet exist on an object parent. Whatever
// value previously occupied the position has its own interned member
// handles released first, so replacing a container does not leak the
// handles nested inside it.
func (c Cursor) Set(tbl *keytable.Table, v *Node) error {
	if old, ok := c.Get(); ok {
		Release(tbl, old)
	}

	if c.Step.IsName {
		c.Parent.Set(tbl, c.Step.Name, v)

		return nil
	}

	return c.Parent.SetAt(c.Step.Index, v)
}

// Delete removes the cursor's target from its parent, releasing every
// interned member handle nested inside the removed value. Returns false
// if the target no longer exists.
func (c Cursor) Delete(tbl *keytable.Table) bool {
	v, ok := c.Get()
	if !ok {
		return false
	}

	var removed bool

	if c.Step.IsName {
		removed = c.Parent.Delete(tbl, c.Step.Name)
	} else {
		removed = c.Parent.RemoveAt(c.Step.Index) == nil
	}

	if removed {
		Release(tbl, v)
	}

	return removed
}
