package command

import (
	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/node"
)

// perCursorResult is the outcome of applying a per-cursor mutation: the
// new value to report (nil if the cursor's kind did not match and the
// operation was skipped there), and whether the cursor matched at all.
// present overrides value in the reported JSON for commands whose
// JSONPath presentation differs from the written value (JSON.TOGGLE
// reports 0/1, not true/false); it defaults to value when nil.
type perCursorResult struct {
	value   *node.Node
	present *node.Node
	matched bool
}

func (r perCursorResult) presentation() *node.Node {
	if r.present != nil {
		return r.present
	}

	return r.value
}

// applyWritePerCursor is the shared shape behind every "apply to each
// matched cursor, null where the kind doesn't match" command: resolve
// the path, fail fast on a legacy mismatch, apply fn to the rest, commit
// or discard based on fn's own error signaling.
func (e *Engine) applyWritePerCursor(
	key, pathStr string,
	fn func(v *node.Node) (perCursorResult, error),
) ([]byte, error) {
	path, err := jsonpath.Parse(pathStr)
	if err != nil {
		return nil, syntaxErr("%v", err)
	}

	if _, exists := e.document(key); !exists {
		return nil, nonexistentErr("key %q does not exist", key)
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

	outcomes := make([]perCursorResult, len(results))

	for i, r := range results {
		outcome, err := fn(r.Value)
		if err != nil {
			if path.Dialect == jsonpath.Legacy {
				e.discard(clone)

				return nil, err
			}

			outcomes[i] = perCursorResult{}

			continue
		}

		outcomes[i] = outcome

		if path.Dialect == jsonpath.Legacy && !outcome.matched {
			e.discard(clone)

			return nil, wrongTypeErr("path %q does not address the required kind", pathStr)
		}
	}

	if err := e.checkLimits(clone); err != nil {
		e.discard(clone)

		return nil, err
	}

	e.commit(key, clone)

	if path.Dialect == jsonpath.Legacy {
		last := outcomes[len(outcomes)-1].value
		out := jsonio.Format(last, jsonio.Compact)
		e.metrics.RecordUpdate(len(out))

		return out, nil
	}

	arr := node.NewArray()

	for _, o := range outcomes {
		if o.matched {
			arr.Append(o.presentation())
		} else {
			arr.Append(node.NewNull())
		}
	}

	out := jsonio.Format(arr, jsonio.Compact)
	e.metrics.RecordUpdate(len(out))

	return out, nil
}

// Toggle implements JSON.TOGGLE key [path]: flips every matched boolean
// and returns its new value (0/1 aligned to matches for JSONPath, the
// last flipped value for legacy).
func (e *Engine) Toggle(key, pathStr string) ([]byte, error) {
	if pathStr == "" {
		pathStr = "."
	}

	return e.applyWritePerCursor(key, pathStr, func(v *node.Node) (perCursorResult, error) {
		if v.Kind() != node.KindBoolean {
			return perCursorResult{}, nil
		}

		v.SetBool(!v.Bool())

		present := node.NewInt(0)
		if v.Bool() {
			present = node.NewInt(1)
		}

		return perCursorResult{value: v, present: present, matched: true}, nil
	})
}

// StrAppend implements JSON.STRAPPEND key path value, where value is a
// JSON string literal whose content is appended to every matched string.
// The reply is each matched string's new length in characters.
func (e *Engine) StrAppend(key, pathStr, valueJSON string) ([]byte, error) {
	tbl := e.tbl

	addition, err := jsonio.Parse(tbl, []byte(valueJSON))
	if err != nil {
		return nil, syntaxErr("%v", err)
	}

	if addition.Kind() != node.KindString {
		return nil, syntaxErr("JSON.STRAPPEND value must be a JSON string")
	}

	return e.applyWritePerCursor(key, pathStr, func(v *node.Node) (perCursorResult, error) {
		if v.Kind() != node.KindString {
			return perCursorResult{}, nil
		}

		v.SetString(v.String() + addition.String())

		return perCursorResult{value: node.NewInt(int64(len([]rune(v.String())))), matched: true}, nil
	})
}

// Clear implements JSON.CLEAR key [path]: objects reset to {}, arrays to
// [], strings to "", numbers to 0, booleans to false. Null is left as is.
// Returns the number of cursors whose value actually changed; an
// already-empty container or zero-valued scalar does not count.
func (e *Engine) Clear(key, pathStr string) (int, error) {
	if pathStr == "" {
		pathStr = "."
	}

	path, err := jsonpath.Parse(pathStr)
	if err != nil {
		return 0, syntaxErr("%v", err)
	}

	if _, exists := e.document(key); !exists {
		return 0, nonexistentErr("key %q does not exist", key)
	}

	clone, _, _ := e.cloneForWrite(key)

	var raw []jsonpath.Result
	if path.IsRoot() {
		raw = []jsonpath.Result{{Value: clone}}
	} else {
		raw = jsonpath.Eval(clone, path)
	}

	results := jsonpath.Dedup(raw)

	count := 0

	for _, r := range results {
		if e.clearOne(r.Value) {
			count++
		}
	}

	if err := e.checkLimits(clone); err != nil {
		e.discard(clone)

		return 0, err
	}

	e.commit(key, clone)

	return count, nil
}

// clearOne resets v to its kind's zero value in place, per JSON.CLEAR.
// Null is never touched. Returns whether v actually changed -- an
// already-empty container, an already-zero number, an already-empty
// string, or an already-false boolean counts as unchanged.
func (e *Engine) clearOne(v *node.Node) bool {
	switch v.Kind() {
	case node.KindObject:
		if v.ObjectLen() == 0 {
			return false
		}

		v.ClearObject(e.tbl)
	case node.KindArray:
		if v.Len() == 0 {
			return false
		}

		for _, it := range v.Items() {
			node.Release(e.tbl, it)
		}

		v.ClearArray()
	case node.KindInteger:
		if v.Int() == 0 {
			return false
		}

		v.SetInt(0)
	case node.KindNumber:
		if v.Float() == 0 {
			return false
		}

		v.SetNumber(0, false)
	case node.KindString:
		if v.String() == "" {
			return false
		}

		v.SetString("")
	case node.KindBoolean:
		if !v.Bool() {
			return false
		}

		v.SetBool(false)
	default:
		return false
	}

	return true
}
