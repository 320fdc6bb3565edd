package command

import (
	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/node"
)

// readPerCursor resolves key/path for a read-only introspection command
// and hands each matched value to fn. A legacy path addressing the wrong
// kind is a wrongtype error; a JSONPath path just reports null for that
// cursor. Legacy presentation returns fn's result for the single match;
// JSONPath presentation returns an array aligned to the matches.
func (e *Engine) readPerCursor(key, pathStr string, fn func(v *node.Node) (*node.Node, bool)) ([]byte, error) {
	if pathStr == "" {
		pathStr = "."
	}

	root, ok := e.document(key)
	if !ok {
		return nil, nonexistentErr("key %q does not exist", key)
	}

	path, results, err := evalPath(root, pathStr)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		if path.Dialect == jsonpath.Legacy {
			return nil, nonexistentErr("path %q does not exist", pathStr)
		}

		return []byte("[]"), nil
	}

	if path.Dialect == jsonpath.Legacy {
		v, ok := fn(results[0].Value)
		if !ok {
			return nil, wrongTypeErr("path %q does not address the required kind", pathStr)
		}

		return jsonio.Format(v, jsonio.Compact), nil
	}

	arr := node.NewArray()

	for _, r := range results {
		v, ok := fn(r.Value)
		if !ok {
			arr.Append(node.NewNull())

			continue
		}

		arr.Append(v)
	}

	return jsonio.Format(arr, jsonio.Compact), nil
}

// StrLen implements JSON.STRLEN key [path]: the UTF-8 rune count of every
// matched string.
func (e *Engine) StrLen(key, pathStr string) ([]byte, error) {
	return e.readPerCursor(key, pathStr, func(v *node.Node) (*node.Node, bool) {
		if v.Kind() != node.KindString {
			return nil, false
		}

		return node.NewInt(int64(len([]rune(v.String())))), true
	})
}

// ObjLen implements JSON.OBJLEN key [path]: the member count of every
// matched object.
func (e *Engine) ObjLen(key, pathStr string) ([]byte, error) {
	return e.readPerCursor(key, pathStr, func(v *node.Node) (*node.Node, bool) {
		if v.Kind() != node.KindObject {
			return nil, false
		}

		return node.NewInt(int64(v.ObjectLen())), true
	})
}

// ObjKeys implements JSON.OBJKEYS key [path]: the member names of every
// matched object, in insertion order.
func (e *Engine) ObjKeys(key, pathStr string) ([]byte, error) {
	return e.readPerCursor(key, pathStr, func(v *node.Node) (*node.Node, bool) {
		if v.Kind() != node.KindObject {
			return nil, false
		}

		keys := node.NewArray()
		for _, k := range v.Keys() {
			keys.Append(node.NewString(k))
		}

		return keys, true
	})
}

// ArrLen implements JSON.ARRLEN key [path]: the element count of every
// matched array.
func (e *Engine) ArrLen(key, pathStr string) ([]byte, error) {
	return e.readPerCursor(key, pathStr, func(v *node.Node) (*node.Node, bool) {
		if v.Kind() != node.KindArray {
			return nil, false
		}

		return node.NewInt(int64(v.Len())), true
	})
}
