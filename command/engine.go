package command

import (
	"go.jsondoc.dev/jsondoc/config"
	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/metrics"
	"go.jsondoc.dev/jsondoc/node"
)

// Engine holds every document under its top-level key. It implements
// every JSON.* command as a method, composing [jsonpath] evaluation and
// [node] mutation per the contracts each method documents.
//
// The host is assumed to dispatch commands one at a time (see the
// engine's concurrency model); Engine performs no locking of its own. A
// host that spawns a concurrent background reader (e.g. a snapshot
// writer) must synchronize externally.
type Engine struct {
	docs    map[string]*node.Node
	tbl     *keytable.Table
	limits  config.Limits
	metrics *metrics.Metrics
}

// New returns an empty [Engine] governed by limits.
func New(limits config.Limits) *Engine {
	node.DefaultHashTableMinSize = limits.HashTableMinSize

	return &Engine{
		docs:    make(map[string]*node.Node),
		tbl:     keytable.New(),
		limits:  limits,
		metrics: metrics.New(),
	}
}

// Metrics returns the engine's metrics, for the host's info section and
// for tests.
func (e *Engine) Metrics() *metrics.Metrics { return e.metrics }

// KeyTable returns the engine's member-name interning table, for the
// DEBUG KEYTABLE-CHECK / KEYTABLE-DISTRIBUTION subcommands.
func (e *Engine) KeyTable() *keytable.Table { return e.tbl }

// document returns the document stored at key, or (nil, false) if key
// does not exist.
func (e *Engine) document(key string) (*node.Node, bool) {
	d, ok := e.docs[key]

	return d, ok
}

// cloneForWrite returns a clone of the document at key along with its
// original size in bytes, or (nil, 0, false) if key does not exist. The
// clone is never committed implicitly; callers must call [Engine.commit]
// or [Engine.discard].
func (e *Engine) cloneForWrite(key string) (*node.Node, int, bool) {
	d, ok := e.docs[key]
	if !ok {
		return nil, 0, false
	}

	return node.Clone(e.tbl, d), jsonio.EncodedLen(d), true
}

// checkLimits validates root against the engine's configured limits,
// returning a *limit* error naming whichever bound was exceeded.
func (e *Engine) checkLimits(root *node.Node) error {
	if depth := node.Depth(root); depth > e.limits.MaxPathLimit {
		return limitErr("document depth %d exceeds max-path-limit %d", depth, e.limits.MaxPathLimit)
	}

	if size := jsonio.EncodedLen(root); size > e.limits.MaxDocumentSize {
		return limitErr("document size %d exceeds max-document-size %d", size, e.limits.MaxDocumentSize)
	}

	return nil
}

// commit installs newRoot as key's document, releasing the key-table
// handles of whatever document previously occupied key (if any), and
// updates size/depth metrics. It assumes newRoot has already passed
// [Engine.checkLimits].
func (e *Engine) commit(key string, newRoot *node.Node) {
	old, existed := e.docs[key]
	e.docs[key] = newRoot

	newSize := jsonio.EncodedLen(newRoot)

	switch {
	case !existed:
		e.metrics.DocumentCreated(newSize)
	default:
		oldSize := jsonio.EncodedLen(old)
		e.metrics.DocumentResized(oldSize, newSize)
		node.Release(e.tbl, old)
	}

	e.metrics.RecordDepth(node.Depth(newRoot))
}

// discard releases root's key-table handles without installing it,
// because the write that produced it failed validation or was a no-op
// under NX/XX.
func (e *Engine) discard(root *node.Node) {
	node.Release(e.tbl, root)
}

// deleteKey removes key's document entirely, releasing its key-table
// handles and updating metrics. Returns false if key did not exist.
func (e *Engine) deleteKey(key string) bool {
	old, ok := e.docs[key]
	if !ok {
		return false
	}

	delete(e.docs, key)
	e.metrics.DocumentDeleted(jsonio.EncodedLen(old))
	node.Release(e.tbl, old)

	return true
}

// releaseShallow releases obj's own member handles without recursing
// into member values, for a scratch object whose values are borrowed
// from a live document rather than owned by obj itself.
func releaseShallow(tbl *keytable.Table, obj *node.Node) {
	for _, m := range obj.Members() {
		tbl.Release(m.Handle)
	}
}

// evalPath parses pathStr and evaluates it against root, in that order,
// surfacing a syntax error for an unparseable path.
func evalPath(root *node.Node, pathStr string) (*jsonpath.Path, []jsonpath.Result, error) {
	p, err := jsonpath.Parse(pathStr)
	if err != nil {
		return nil, nil, syntaxErr("%v", err)
	}

	if p.IsRoot() {
		return p, []jsonpath.Result{{Value: root}}, nil
	}

	return p, jsonpath.Eval(root, p), nil
}
