package node

import "errors"

// ErrIndexOutOfRange is returned by array accessors when an index does not
// resolve to an existing element or a valid insertion point.
var ErrIndexOutOfRange = errors.New("index out of range")

// Len returns the number of elements. Only meaningful for KindArray.
func (n *Node) Len() int { return len(n.items) }

// Items returns the array's elements, in order. The caller must not mutate
// the returned slice; only meaningful for KindArray.
func (n *Node) Items() []*Node { return n.items }

// NormalizeIndex resolves a possibly-negative array index against length l,
// counting -1 as the last element. It does not bounds-check the result.
func NormalizeIndex(idx, l int) int {
	if idx < 0 {
		return l + idx
	}

	return idx
}

// At returns the element at idx (negative counts from the end), or
// (nil, false) if idx is out of [-len, len-1].
func (n *Node) At(idx int) (*Node, bool) {
	i := NormalizeIndex(idx, len(n.items))
	if i < 0 || i >= len(n.items) {
		return nil, false
	}

	return n.items[i], true
}

// SetAt replaces the element at idx (negative counts from the end).
// Returns ErrIndexOutOfRange if idx does not address an existing element.
func (n *Node) SetAt(idx int, v *Node) error {
	i := NormalizeIndex(idx, len(n.items))
	if i < 0 || i >= len(n.items) {
		return ErrIndexOutOfRange
	}

	n.items[i] = v

	return nil
}

// Append adds elements to the end of the array.
func (n *Node) Append(vs ...*Node) {
	n.items = append(n.items, vs...)
}

// InsertAt inserts v before position idx (negative counts from the end,
// following the same convention as JSON.ARRINSERT: idx may equal len(n)
// to append). Returns ErrIndexOutOfRange if idx is not in [-len, len].
func (n *Node) InsertAt(idx int, v *Node) error {
	l := len(n.items)

	i := idx
	if i < 0 {
		i = l + i
	}

	if i < 0 || i > l {
		return ErrIndexOutOfRange
	}

	n.items = append(n.items, nil)
	copy(n.items[i+1:], n.items[i:])
	n.items[i] = v

	return nil
}

// RemoveAt deletes the element at idx (negative counts from the end).
// Returns ErrIndexOutOfRange if idx does not address an existing element.
func (n *Node) RemoveAt(idx int) error {
	i := NormalizeIndex(idx, len(n.items))
	if i < 0 || i >= len(n.items) {
		return ErrIndexOutOfRange
	}

	n.items = append(n.items[:i], n.items[i+1:]...)

	return nil
}

// ClearArray empties the array in place.
func (n *Node) ClearArray() { n.items = nil }
