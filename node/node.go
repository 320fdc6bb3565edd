package node

import "go.jsondoc.dev/jsondoc/keytable"

// DefaultHashTableMinSize is the member count at or above which a newly
// created object maintains an auxiliary name->position index instead of
// relying on linear scan. Overridable via config.Limits.HashTableMinSize,
// which assigns it before the engine processes any command.
var DefaultHashTableMinSize = 64

// Member is one (name, value) pair of an object, in insertion order.
type Member struct {
	Handle keytable.Handle
	Value  *Node
}

// Node is a tagged union over the seven JSON value kinds. The zero Node is
// not valid; build one with a constructor such as [NewNull] or [NewObject].
type Node struct {
	kind Kind

	boolVal bool
	intVal  int64
	numVal  float64
	lexical string // preserved source text; cleared by arithmetic mutation
	strVal  string

	items   []*Node
	members []Member
	index   map[string]int // name -> position in members; nil below hashMin
	hashMin int
}

// Kind returns n's tag.
func (n *Node) Kind() Kind { return n.kind }

// NewNull returns a null node.
func NewNull() *Node { return &Node{kind: KindNull} }

// NewBool returns a boolean node.
func NewBool(b bool) *Node { return &Node{kind: KindBoolean, boolVal: b} }

// NewInt returns an integer node.
func NewInt(v int64) *Node { return &Node{kind: KindInteger, intVal: v} }

// NewNumber returns a non-integer number node. lexical is the original
// source text to preserve on round trip; pass "" to force shortest-form
// formatting immediately.
func NewNumber(v float64, lexical string) *Node {
	return &Node{kind: KindNumber, numVal: v, lexical: lexical}
}

// NewString returns a string node.
func NewString(s string) *Node { return &Node{kind: KindString, strVal: s} }

// NewArray returns an array node containing items, in order.
func NewArray(items ...*Node) *Node {
	return &Node{kind: KindArray, items: items}
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{kind: KindObject, hashMin: DefaultHashTableMinSize}
}

// Bool returns the boolean value. Only meaningful when Kind() == KindBoolean.
func (n *Node) Bool() bool { return n.boolVal }

// Int returns the integer value. Only meaningful when Kind() == KindInteger.
func (n *Node) Int() int64 { return n.intVal }

// Float returns the numeric value as a float64, valid for both KindInteger
// and KindNumber.
func (n *Node) Float() float64 {
	if n.kind == KindInteger {
		return float64(n.intVal)
	}

	return n.numVal
}

// Lexical returns the preserved source text for an unmutated KindNumber
// node, or "" if the node has been reformatted since parsing.
func (n *Node) Lexical() string { return n.lexical }

// String returns the string value. Only meaningful when Kind() == KindString.
func (n *Node) String() string { return n.strVal }

// SetBool overwrites a boolean node's value in place (used by JSON.TOGGLE).
func (n *Node) SetBool(b bool) { n.boolVal = b }

// SetNumber overwrites a numeric node's value in place, discarding any
// preserved lexical form, and promotes/demotes its kind to match isInt.
func (n *Node) SetNumber(v float64, isInt bool) {
	n.lexical = ""

	if isInt {
		n.kind = KindInteger
		n.intVal = int64(v)

		return
	}

	n.kind = KindNumber
	n.numVal = v
}

// SetInt overwrites an integer node's value in place, discarding any
// preserved lexical form.
func (n *Node) SetInt(v int64) {
	n.lexical = ""
	n.kind = KindInteger
	n.intVal = v
}

// SetString overwrites a string node's value in place.
func (n *Node) SetString(s string) { n.strVal = s }

// ReplaceWith overwrites n in place so it becomes a copy of other. Used by
// JSON.SET and JSON.CLEAR to mutate a cursor's target without relocating it
// in its parent.
func (n *Node) ReplaceWith(other *Node) {
	*n = *other
}
