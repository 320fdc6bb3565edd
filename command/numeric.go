package command

import (
	"math"

	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/node"
	"go.jsondoc.dev/jsondoc/numfmt"
)

type numOp int

const (
	opIncr numOp = iota
	opMult
)

// NumIncrBy implements JSON.NUMINCRBY key path delta.
func (e *Engine) NumIncrBy(key, pathStr, deltaStr string) ([]byte, error) {
	return e.numOp(key, pathStr, deltaStr, opIncr)
}

// NumMultBy implements JSON.NUMMULTBY key path delta.
func (e *Engine) NumMultBy(key, pathStr, deltaStr string) ([]byte, error) {
	return e.numOp(key, pathStr, deltaStr, opMult)
}

// numOp applies an arithmetic update to every numeric cursor a path
// resolves to. A legacy path on a non-numeric cursor is a *wrongtype*
// error; a JSONPath path skips that cursor, emitting JSON null at its
// position. Legacy presentation returns the last updated cursor's value;
// JSONPath presentation returns an array aligned to the matched cursors.
func (e *Engine) numOp(key, pathStr, deltaStr string, op numOp) ([]byte, error) {
	delta, err := numfmt.Scan(deltaStr)
	if err != nil {
		return nil, syntaxErr("invalid delta %q: %v", deltaStr, err)
	}

	path, err := jsonpath.Parse(pathStr)
	if err != nil {
		return nil, syntaxErr("%v", err)
	}

	if _, exists := e.document(key); !exists {
		return nil, nonexistentErr("key %q does not exist", key)
	}

	clone, _, _ := e.cloneForWrite(key)

	var rawResults []jsonpath.Result
	if path.IsRoot() {
		rawResults = []jsonpath.Result{{Value: clone}}
	} else {
		rawResults = jsonpath.Eval(clone, path)
	}

	results := jsonpath.Dedup(rawResults)

	if len(results) == 0 {
		e.discard(clone)

		if path.Dialect == jsonpath.Legacy {
			return nil, nonexistentErr("path %q does not exist", pathStr)
		}

		out := []byte("[]")
		e.metrics.RecordRead(len(out))

		return out, nil
	}

	var updated []*node.Node

	for _, r := range results {
		if !r.Value.Kind().IsNumeric() {
			if path.Dialect == jsonpath.Legacy {
				e.discard(clone)

				return nil, wrongTypeErr("path %q does not address a number", pathStr)
			}

			updated = append(updated, node.NewNull())

			continue
		}

		v, err := applyNumOp(r.Value, delta, op)
		if err != nil {
			e.discard(clone)

			return nil, err
		}

		updated = append(updated, v)
	}

	if err := e.checkLimits(clone); err != nil {
		e.discard(clone)

		return nil, err
	}

	e.commit(key, clone)

	if path.Dialect == jsonpath.Legacy {
		var last *node.Node

		for _, v := range updated {
			if v != nil {
				last = v
			}
		}

		out := jsonio.Format(last, jsonio.Compact)
		e.metrics.RecordUpdate(len(out))

		return out, nil
	}

	arr := node.NewArray(updated...)
	out := jsonio.Format(arr, jsonio.Compact)
	e.metrics.RecordUpdate(len(out))

	return out, nil
}

func applyNumOp(n *node.Node, delta numfmt.Scanned, op numOp) (*node.Node, error) {
	cur := n.Float()

	var result float64

	switch op {
	case opIncr:
		result = cur + delta.Float
	case opMult:
		result = cur * delta.Float
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return nil, overflowErr("arithmetic result is not a finite number")
	}

	isInt := n.Kind() == node.KindInteger && delta.IsInt && result == math.Trunc(result) &&
		result >= math.MinInt64 && result <= math.MaxInt64

	n.SetNumber(result, isInt)

	return n, nil
}
