package command

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/node"
	"go.jsondoc.dev/jsondoc/schemagen"
)

// DebugMemory implements JSON.DEBUG MEMORY key [path]: the compact
// serialized byte size of the value at path (root if omitted).
func (e *Engine) DebugMemory(key, pathStr string) (int, error) {
	if pathStr == "" {
		pathStr = "."
	}

	root, ok := e.document(key)
	if !ok {
		return 0, nonexistentErr("key %q does not exist", key)
	}

	_, results, err := evalPath(root, pathStr)
	if err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nonexistentErr("path %q does not exist", pathStr)
	}

	return jsonio.EncodedLen(results[0].Value), nil
}

// DebugDepth implements JSON.DEBUG DEPTH key: the tree depth of the whole
// document.
func (e *Engine) DebugDepth(key string) (int, error) {
	root, ok := e.document(key)
	if !ok {
		return 0, nonexistentErr("key %q does not exist", key)
	}

	return node.Depth(root), nil
}

// DebugFields implements JSON.DEBUG FIELDS key [path]: the total node
// count of the value at path (root if omitted), counting every node in
// its subtree including itself.
func (e *Engine) DebugFields(key, pathStr string) (int, error) {
	if pathStr == "" {
		pathStr = "."
	}

	root, ok := e.document(key)
	if !ok {
		return 0, nonexistentErr("key %q does not exist", key)
	}

	_, results, err := evalPath(root, pathStr)
	if err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nonexistentErr("path %q does not exist", pathStr)
	}

	return countFields(results[0].Value), nil
}

func countFields(n *node.Node) int {
	if n == nil {
		return 0
	}

	count := 1

	switch n.Kind() {
	case node.KindArray:
		for _, it := range n.Items() {
			count += countFields(it)
		}
	case node.KindObject:
		for _, m := range n.Members() {
			count += countFields(m.Value)
		}
	}

	return count
}

// DebugKeyTableCheck implements JSON.DEBUG KEYTABLE-CHECK: an internal
// consistency check over the process-wide member-name table.
func (e *Engine) DebugKeyTableCheck() (string, bool) {
	return e.tbl.Check()
}

// keyTableBucketOrder is the display order for JSON.DEBUG
// KEYTABLE-DISTRIBUTION, narrowest reference count first.
var keyTableBucketOrder = []string{"1", "2-4", "5-16", "17+"}

// DebugKeyTableDistribution implements JSON.DEBUG KEYTABLE-DISTRIBUTION:
// a histogram of reference counts across interned member names, reported
// as ordered (bucket, entries-in-bucket) pairs for a stable rendering.
func (e *Engine) DebugKeyTableDistribution() []KeyTableBucket {
	dist := e.tbl.Distribution()

	buckets := make([]KeyTableBucket, 0, len(keyTableBucketOrder))
	for _, label := range keyTableBucketOrder {
		buckets = append(buckets, KeyTableBucket{Bucket: label, Entries: dist[label]})
	}

	return buckets
}

// KeyTableBucket is one row of a JSON.DEBUG KEYTABLE-DISTRIBUTION report.
type KeyTableBucket struct {
	Bucket  string
	Entries int
}

// DebugSchema implements the bonus JSON.DEBUG SCHEMA key [path]
// subcommand: infers a Draft 7 JSON Schema describing the shape of the
// value at path (root if omitted).
func (e *Engine) DebugSchema(key, pathStr string) (*jsonschema.Schema, error) {
	if pathStr == "" {
		pathStr = "."
	}

	root, ok := e.document(key)
	if !ok {
		return nil, nonexistentErr("key %q does not exist", key)
	}

	_, results, err := evalPath(root, pathStr)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nonexistentErr("path %q does not exist", pathStr)
	}

	return schemagen.Generate(results[0].Value), nil
}
