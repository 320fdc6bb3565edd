// Package node implements the in-memory document tree: ordered objects,
// indexed arrays, and scalar leaves, plus the cursor type path evaluation
// uses to address a position for reads and mutations.
//
// A [Node] is a tagged union over the seven JSON kinds. Integer and
// non-integer numeric values are distinct kinds so JSON.TYPE can report
// them separately even though both serialize as JSON's single number
// production. Object members are held in insertion order and addressed
// through [keytable.Handle]s rather than raw strings, sharing backing
// bytes across every document in the process.
//
// Every write goes through [Clone], which deep-copies the root before any
// mutation is applied. The command layer commits the clone only after
// confirming the post-state respects configured limits, which keeps a
// failed or rejected write from ever becoming visible -- the atomicity the
// engine's single-threaded dispatch model promises callers.
package node
