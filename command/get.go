package command

import (
	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/node"
)

// GetOptions parameterizes JSON.GET's serialization and path arguments.
type GetOptions struct {
	Indent  string
	Space   string
	Newline string
	Paths   []string
}

// formatOpts returns the [jsonio.Options] equivalent to o.
func (o GetOptions) formatOpts() jsonio.Options {
	return jsonio.Options{Indent: o.Indent, Space: o.Space, Newline: o.Newline}
}

// Get implements JSON.GET key [INDENT s] [SPACE s] [NEWLINE s] [NOESCAPE]
// [path ...]. Returns (nil, false, nil) if key does not exist. With zero
// or one legacy path, returns that path's single value. With multiple
// paths, or any JSONPath path, returns an object keyed by the literal
// path strings.
func (e *Engine) Get(key string, opts GetOptions) ([]byte, bool, error) {
	root, exists := e.document(key)
	if !exists {
		return nil, false, nil
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if len(paths) == 1 {
		p, err := jsonpath.Parse(paths[0])
		if err != nil {
			return nil, false, syntaxErr("%v", err)
		}

		if p.Dialect == jsonpath.Legacy {
			v, err := legacySingle(root, p, paths[0])
			if err != nil {
				return nil, false, err
			}

			out := jsonio.Format(v, opts.formatOpts())
			e.metrics.RecordRead(len(out))

			return out, true, nil
		}
	}

	allLegacy := true

	parsed := make([]*jsonpath.Path, len(paths))

	for i, ps := range paths {
		p, err := jsonpath.Parse(ps)
		if err != nil {
			return nil, false, syntaxErr("%v", err)
		}

		parsed[i] = p

		if p.Dialect != jsonpath.Legacy {
			allLegacy = false
		}
	}

	obj := node.NewObject()

	for i, p := range parsed {
		if allLegacy {
			v, err := legacySingle(root, p, paths[i])
			if err != nil {
				releaseShallow(e.tbl, obj)

				return nil, false, err
			}

			obj.Set(e.tbl, paths[i], v)

			continue
		}

		results := jsonpath.Eval(root, p)
		arr := node.NewArray()

		for _, r := range results {
			arr.Append(r.Value)
		}

		obj.Set(e.tbl, paths[i], arr)
	}

	out := jsonio.Format(obj, opts.formatOpts())
	e.metrics.RecordRead(len(out))

	// obj's values are borrowed from the live document (or freshly built
	// arrays of borrowed values); only its own member handles -- one per
	// literal path string -- are this call's to release.
	releaseShallow(e.tbl, obj)

	return out, true, nil
}

// legacySingle resolves a legacy path's single value, failing with a
// *nonexistent* error on zero matches.
func legacySingle(root *node.Node, p *jsonpath.Path, pathStr string) (*node.Node, error) {
	if p.IsRoot() {
		return root, nil
	}

	results := jsonpath.Eval(root, p)
	if len(results) == 0 {
		return nil, nonexistentErr("path %q does not exist", pathStr)
	}

	return results[0].Value, nil
}

// MGet implements JSON.MGET key1 ... keyN path. The result is an array
// of length N, null at any key that is missing or whose path misses.
func (e *Engine) MGet(keys []string, pathStr string) ([][]byte, error) {
	p, err := jsonpath.Parse(pathStr)
	if err != nil {
		return nil, syntaxErr("%v", err)
	}

	out := make([][]byte, len(keys))

	for i, key := range keys {
		root, exists := e.document(key)
		if !exists {
			continue
		}

		if p.Dialect == jsonpath.Legacy {
			v, missing := legacySingleNoErr(root, p)
			if missing {
				continue
			}

			out[i] = jsonio.Format(v, jsonio.Compact)

			continue
		}

		results := jsonpath.Eval(root, p)
		arr := node.NewArray()

		for _, r := range results {
			arr.Append(r.Value)
		}

		out[i] = jsonio.Format(arr, jsonio.Compact)
	}

	return out, nil
}

func legacySingleNoErr(root *node.Node, p *jsonpath.Path) (*node.Node, bool) {
	if p.IsRoot() {
		return root, false
	}

	results := jsonpath.Eval(root, p)
	if len(results) == 0 {
		return nil, true
	}

	return results[0].Value, false
}

// Type implements JSON.TYPE key [path]. Returns (nil, false, nil) if key
// is missing. A legacy path returns a single kind name; a JSONPath path
// returns one kind name per match.
func (e *Engine) Type(key, pathStr string) ([]string, bool, error) {
	root, exists := e.document(key)
	if !exists {
		return nil, false, nil
	}

	if pathStr == "" {
		pathStr = "."
	}

	p, err := jsonpath.Parse(pathStr)
	if err != nil {
		return nil, false, syntaxErr("%v", err)
	}

	if p.Dialect == jsonpath.Legacy {
		v, err := legacySingle(root, p, pathStr)
		if err != nil {
			return nil, false, err
		}

		return []string{v.Kind().String()}, true, nil
	}

	results := jsonpath.Eval(root, p)
	kinds := make([]string, len(results))

	for i, r := range results {
		kinds[i] = r.Value.Kind().String()
	}

	return kinds, true, nil
}

// Resp implements JSON.RESP key [path]: a RESP-ready translation of the
// value into the nested array-of-arrays form the host serializes
// directly -- objects as ["{", [name, value], ...], arrays as
// ["[", value, ...], scalars passed through typed as string, int64,
// float64, bool, or nil.
func (e *Engine) Resp(key, pathStr string) (any, bool, error) {
	root, exists := e.document(key)
	if !exists {
		return nil, false, nil
	}

	if pathStr == "" {
		pathStr = "."
	}

	v, err := legacySingleFromPath(root, pathStr)
	if err != nil {
		return nil, false, err
	}

	return toResp(v), true, nil
}

func legacySingleFromPath(root *node.Node, pathStr string) (*node.Node, error) {
	p, err := jsonpath.Parse(pathStr)
	if err != nil {
		return nil, syntaxErr("%v", err)
	}

	return legacySingle(root, p, pathStr)
}

func toResp(v *node.Node) any {
	switch v.Kind() {
	case node.KindObject:
		out := []any{"{"}

		for _, m := range v.Members() {
			out = append(out, []any{m.Handle.Name(), toResp(m.Value)})
		}

		return out

	case node.KindArray:
		out := []any{"["}

		for _, it := range v.Items() {
			out = append(out, toResp(it))
		}

		return out

	case node.KindString:
		return v.String()
	case node.KindInteger:
		return v.Int()
	case node.KindNumber:
		return v.Float()
	case node.KindBoolean:
		return v.Bool()
	default:
		return nil
	}
}
