package command

import (
	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/node"
)

// Set implements JSON.SET key path value [NX|XX]. It returns true if the
// document was written, false if NX/XX made the command a no-op (the
// host reports that as a null reply, not an error).
func (e *Engine) Set(key, pathStr, valueJSON string, nx, xx bool) (bool, error) {
	path, err := jsonpath.Parse(pathStr)
	if err != nil {
		return false, syntaxErr("%v", err)
	}

	val, err := jsonio.Parse(e.tbl, []byte(valueJSON))
	if err != nil {
		return false, syntaxErr("%v", err)
	}

	if path.IsRoot() {
		return e.setRoot(key, val, nx, xx)
	}

	return e.setPath(key, path, val, nx, xx)
}

func (e *Engine) setRoot(key string, val *node.Node, nx, xx bool) (bool, error) {
	_, exists := e.document(key)

	if exists && nx {
		e.discard(val)

		return false, nil
	}

	if !exists && xx {
		e.discard(val)

		return false, nil
	}

	if err := e.checkLimits(val); err != nil {
		e.discard(val)

		return false, err
	}

	e.commit(key, val)

	return true, nil
}

func (e *Engine) setPath(key string, path *jsonpath.Path, val *node.Node, nx, xx bool) (bool, error) {
	defer e.discard(val)

	if _, exists := e.document(key); !exists {
		return false, nonexistentErr("key %q does not exist and path is not root", key)
	}

	clone, _, _ := e.cloneForWrite(key)

	results := jsonpath.Dedup(jsonpath.Eval(clone, path))

	if len(results) > 0 {
		if nx {
			e.discard(clone)

			return false, nil
		}

		for _, r := range results {
			if err := r.Cursor.Set(e.tbl, node.Clone(e.tbl, val)); err != nil {
				e.discard(clone)

				return false, outOfBoundariesErr("%v", err)
			}
		}
	} else {
		if xx {
			e.discard(clone)

			return false, nil
		}

		if err := e.insertNewMember(clone, path, val); err != nil {
			e.discard(clone)

			return false, err
		}
	}

	if err := e.checkLimits(clone); err != nil {
		e.discard(clone)

		return false, err
	}

	e.commit(key, clone)

	return true, nil
}

// insertNewMember handles the zero-match SET case: path's parent must be
// an existing object and the final step a single new member name. Any
// other missing intermediate step is a *nonexistent* error; a final step
// that is not a simple member name, or a parent that is not an object,
// is a *write* error (traversal through the wrong shape).
func (e *Engine) insertNewMember(root *node.Node, path *jsonpath.Path, val *node.Node) error {
	steps := path.Steps
	if len(steps) == 0 {
		return nonexistentErr("empty path")
	}

	last := steps[len(steps)-1]

	parent, status := walkSingular(root, steps[:len(steps)-1])

	switch status {
	case walkMissing:
		return nonexistentErr("missing intermediate path element")
	case walkWrongContainer:
		return writeErr("attempt to traverse through a non-container ancestor")
	}

	if last.Kind != jsonpath.StepName || len(last.Names) != 1 {
		return writeErr("final path segment is not a single member name")
	}

	if parent.Kind() != node.KindObject {
		return writeErr("cannot create a member on a non-object parent")
	}

	parent.Set(e.tbl, last.Names[0], node.Clone(e.tbl, val))

	return nil
}

// walkStatus reports how [walkSingular] terminated.
type walkStatus int

const (
	walkOK walkStatus = iota
	// walkMissing: every ancestor had the right container kind, but a
	// name or index step simply wasn't present.
	walkMissing
	// walkWrongContainer: a step needed to traverse through a node that
	// is not the container kind it requires (e.g. an object-name step
	// against a scalar or array). Always a write error, never a missing
	// path -- the ancestor exists, just not as a traversable container.
	walkWrongContainer
)

// walkSingular resolves a deterministic chain of single-name or
// single-index steps to exactly one node, the shape every SET insert
// path requires: ambiguous steps (unions, wildcards, slices, recursive
// descent, filters) never address a unique insertion point.
func walkSingular(root *node.Node, steps []jsonpath.Step) (*node.Node, walkStatus) {
	cur := root

	for _, st := range steps {
		switch st.Kind {
		case jsonpath.StepName:
			if len(st.Names) != 1 {
				return nil, walkMissing
			}

			if cur.Kind() != node.KindObject {
				return nil, walkWrongContainer
			}

			v, ok := cur.Get(st.Names[0])
			if !ok {
				return nil, walkMissing
			}

			cur = v

		case jsonpath.StepIndex:
			if len(st.Indices) != 1 {
				return nil, walkMissing
			}

			if cur.Kind() != node.KindArray {
				return nil, walkWrongContainer
			}

			v, ok := cur.At(st.Indices[0])
			if !ok {
				return nil, walkMissing
			}

			cur = v

		default:
			return nil, walkMissing
		}
	}

	return cur, walkOK
}
