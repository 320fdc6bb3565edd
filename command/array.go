package command

import (
	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/node"
)

// ArrAppend implements JSON.ARRAPPEND key path value [value ...]: appends
// every value, in order, to each matched array.
func (e *Engine) ArrAppend(key, pathStr string, valuesJSON []string) ([]byte, error) {
	vals, err := parseValues(e.tbl, valuesJSON)
	if err != nil {
		return nil, err
	}

	out, err := e.applyWritePerCursor(key, pathStr, func(v *node.Node) (perCursorResult, error) {
		if v.Kind() != node.KindArray {
			return perCursorResult{}, nil
		}

		v.Append(cloneAll(e.tbl, vals)...)

		return perCursorResult{value: node.NewInt(int64(v.Len())), matched: true}, nil
	})

	releaseAll(e.tbl, vals)

	return out, err
}

// ArrInsert implements JSON.ARRINSERT key path index value [value ...]:
// inserts every value, in order, before index (negative counts from the
// end; index == len(array) appends) in each matched array.
func (e *Engine) ArrInsert(key, pathStr string, index int, valuesJSON []string) ([]byte, error) {
	vals, err := parseValues(e.tbl, valuesJSON)
	if err != nil {
		return nil, err
	}

	out, err := e.applyWritePerCursor(key, pathStr, func(v *node.Node) (perCursorResult, error) {
		if v.Kind() != node.KindArray {
			return perCursorResult{}, nil
		}

		pos := index
		if pos < 0 {
			pos += v.Len()
		}

		for i, val := range cloneAll(e.tbl, vals) {
			if err := v.InsertAt(pos+i, val); err != nil {
				return perCursorResult{}, outOfBoundariesErr("index %d out of range", index)
			}
		}

		return perCursorResult{value: node.NewInt(int64(v.Len())), matched: true}, nil
	})

	releaseAll(e.tbl, vals)

	return out, err
}

// ArrTrim implements JSON.ARRTRIM key path start stop: keeps only the
// inclusive [start, stop] slice of each matched array (indices clamped
// into range), discarding the rest.
func (e *Engine) ArrTrim(key, pathStr string, start, stop int) ([]byte, error) {
	return e.applyWritePerCursor(key, pathStr, func(v *node.Node) (perCursorResult, error) {
		if v.Kind() != node.KindArray {
			return perCursorResult{}, nil
		}

		l := v.Len()
		items := v.Items()

		s := node.NormalizeIndex(start, l)
		if s < 0 {
			s = 0
		}

		e2 := node.NormalizeIndex(stop, l)
		if e2 >= l {
			e2 = l - 1
		}

		var kept []*node.Node

		if s <= e2 && l > 0 {
			kept = append(kept, items[s:e2+1]...)
		}

		for i, it := range items {
			if i < s || i > e2 {
				node.Release(e.tbl, it)
			}
		}

		v.ClearArray()
		v.Append(kept...)

		return perCursorResult{value: node.NewInt(int64(v.Len())), matched: true}, nil
	})
}

// ArrPop implements JSON.ARRPOP key [path [index]]: removes and returns
// the element at index (default -1) of each matched array. An empty
// array yields null rather than an error.
func (e *Engine) ArrPop(key, pathStr string, index int) ([]byte, error) {
	if pathStr == "" {
		pathStr = "."
	}

	if _, exists := e.document(key); !exists {
		return nil, nonexistentErr("key %q does not exist", key)
	}

	path, err := jsonpath.Parse(pathStr)
	if err != nil {
		return nil, syntaxErr("%v", err)
	}

	clone, _, _ := e.cloneForWrite(key)

	var raw []jsonpath.Result
	if path.IsRoot() {
		raw = []jsonpath.Result{{Value: clone}}
	} else {
		raw = jsonpath.Eval(clone, path)
	}

	results := jsonpath.Dedup(raw)

	if len(results) == 0 {
		e.discard(clone)

		if path.Dialect == jsonpath.Legacy {
			return nil, nonexistentErr("path %q does not exist", pathStr)
		}

		return []byte("[]"), nil
	}

	popped := make([]*node.Node, len(results))

	for i, r := range results {
		v := r.Value
		if v.Kind() != node.KindArray {
			if path.Dialect == jsonpath.Legacy {
				e.discard(clone)

				return nil, wrongTypeErr("path %q does not address an array", pathStr)
			}

			continue
		}

		if v.Len() == 0 {
			popped[i] = node.NewNull()

			continue
		}

		idx := node.NormalizeIndex(index, v.Len())
		if idx < 0 || idx >= v.Len() {
			e.discard(clone)

			return nil, outOfBoundariesErr("index %d out of range", index)
		}

		item, _ := v.At(idx)
		_ = v.RemoveAt(idx)
		popped[i] = item
	}

	if err := e.checkLimits(clone); err != nil {
		e.discard(clone)

		return nil, err
	}

	e.commit(key, clone)

	if path.Dialect == jsonpath.Legacy {
		var last *node.Node

		for _, v := range popped {
			if v != nil {
				last = v
			}
		}

		if last == nil {
			last = node.NewNull()
		}

		out := jsonio.Format(last, jsonio.Compact)
		releaseAll(e.tbl, popped)

		return out, nil
	}

	arr := node.NewArray()

	for _, v := range popped {
		if v == nil {
			v = node.NewNull()
		}

		arr.Append(v)
	}

	out := jsonio.Format(arr, jsonio.Compact)
	releaseAll(e.tbl, popped)

	return out, nil
}

// ArrIndex implements JSON.ARRINDEX key path value [start [stop]]: the
// first index in [start, stop) of each matched array whose element is
// deeply equal to value, or -1. stop == 0 means "to the end".
func (e *Engine) ArrIndex(key, pathStr, valueJSON string, start, stop int) ([]byte, error) {
	tbl := e.tbl

	needle, err := jsonio.Parse(tbl, []byte(valueJSON))
	if err != nil {
		return nil, syntaxErr("%v", err)
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

	find := func(v *node.Node) (*node.Node, bool) {
		if v.Kind() != node.KindArray {
			return nil, false
		}

		l := v.Len()

		s := node.NormalizeIndex(start, l)
		if s < 0 {
			s = 0
		}

		e2 := stop
		if e2 <= 0 {
			e2 = l
		} else {
			e2 = node.NormalizeIndex(stop, l)
		}

		if e2 > l {
			e2 = l
		}

		items := v.Items()

		for i := s; i < e2; i++ {
			if node.Equal(items[i], needle) {
				return node.NewInt(int64(i)), true
			}
		}

		return node.NewInt(-1), true
	}

	if path.Dialect == jsonpath.Legacy {
		v, ok := find(results[0].Value)
		if !ok {
			return nil, wrongTypeErr("path %q does not address an array", pathStr)
		}

		return jsonio.Format(v, jsonio.Compact), nil
	}

	arr := node.NewArray()

	for _, r := range results {
		v, ok := find(r.Value)
		if !ok {
			arr.Append(node.NewNull())

			continue
		}

		arr.Append(v)
	}

	return jsonio.Format(arr, jsonio.Compact), nil
}

// parseValues parses each element of valuesJSON as an independent JSON
// value, in order, surfacing a syntax error naming the first that fails.
func parseValues(tbl *keytable.Table, valuesJSON []string) ([]*node.Node, error) {
	vals := make([]*node.Node, len(valuesJSON))

	for i, raw := range valuesJSON {
		v, err := jsonio.Parse(tbl, []byte(raw))
		if err != nil {
			return nil, syntaxErr("invalid value %q: %v", raw, err)
		}

		vals[i] = v
	}

	return vals, nil
}

// cloneAll returns an independent clone of each of vals, since a single
// parsed value must never be shared between two cursors (or two call
// sites of the same append/insert across matched cursors).
func cloneAll(tbl *keytable.Table, vals []*node.Node) []*node.Node {
	out := make([]*node.Node, len(vals))
	for i, v := range vals {
		out[i] = node.Clone(tbl, v)
	}

	return out
}

// releaseAll releases the key-table handles of vals, which parseValues
// interned as templates that are only ever inserted into the document by
// way of a clone, never directly.
func releaseAll(tbl *keytable.Table, vals []*node.Node) {
	for _, v := range vals {
		node.Release(tbl, v)
	}
}
