package keytable

import "sync"

// entry is the shared backing for every [Handle] pointing at the same name.
type entry struct {
	name string
	refs int64
}

// Handle is a lightweight reference to an interned object-member name.
// The zero Handle is not valid; obtain one from [Table.Intern].
type Handle struct {
	e *entry
}

// Name returns the interned string.
func (h Handle) Name() string {
	if h.e == nil {
		return ""
	}

	return h.e.name
}

// Valid reports whether h was obtained from a [Table].
func (h Handle) Valid() bool {
	return h.e != nil
}

// Table is a process-wide interning table for object member names.
//
// Create instances with [New]. The zero value is not usable.
type Table struct {
	entries map[string]*entry
	mu      sync.Mutex
}

// New returns an empty [Table].
func New() *Table {
	return &Table{entries: make(map[string]*entry)}
}

// Intern returns a [Handle] for name, creating the backing entry on first
// use and incrementing its reference count on every call. Each returned
// Handle must eventually be released with [Table.Release].
func (t *Table) Intern(name string) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[name]
	if !ok {
		e = &entry{name: name}
		t.entries[name] = e
	}

	e.refs++

	return Handle{e: e}
}

// Retain increments h's reference count and returns h unchanged, for use
// when a node holding h is duplicated (e.g. during copy-on-write cloning).
func (t *Table) Retain(h Handle) Handle {
	if !h.Valid() {
		return h
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	h.e.refs++

	return h
}

// Release decrements h's reference count, freeing the entry from the table
// once the last holder has released it. Release must run before the node
// that held h is dropped, never after, so a concurrent reader of the table
// never observes a dangling handle.
func (t *Table) Release(h Handle) {
	if !h.Valid() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	h.e.refs--
	if h.e.refs <= 0 {
		delete(t.entries, h.e.name)
	}
}

// Len returns the number of distinct interned names currently held.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Check verifies that every live entry has a positive reference count and
// that each entry's stored name matches the key it is filed under. It backs the JSON.DEBUG KEYTABLE-CHECK
// subcommand. Returns a human-readable report and true if the table is
// internally consistent.
func (t *Table) Check() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ok := true
	bad := 0

	for name, e := range t.entries {
		if e.refs <= 0 || e.name != name {
			ok = false
			bad++
		}
	}

	if ok {
		return "keytable consistent", true
	}

	return "keytable inconsistent", false
}

// Distribution reports the reference-count histogram backing the
// JSON.DEBUG KEYTABLE-DISTRIBUTION subcommand: number of entries held by
// exactly 1, 2-4, 5-16, and 17+ documents.
func (t *Table) Distribution() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	dist := map[string]int{"1": 0, "2-4": 0, "5-16": 0, "17+": 0}

	for _, e := range t.entries {
		switch {
		case e.refs == 1:
			dist["1"]++
		case e.refs <= 4:
			dist["2-4"]++
		case e.refs <= 16:
			dist["5-16"]++
		default:
			dist["17+"]++
		}
	}

	return dist
}
