package command

import "go.jsondoc.dev/jsondoc/jsonpath"

// Del implements JSON.DEL / JSON.FORGET key [path]. A missing key or a
// path matching nothing returns 0. The root path (or no path) deletes
// the whole key. Otherwise returns the number of distinct cursors
// removed, applying [jsonpath.SortForDeletion] so deleting several
// positions in the same array never invalidates a later index in the
// same batch.
func (e *Engine) Del(key, pathStr string) (int, error) {
	if pathStr == "" {
		pathStr = "."
	}

	path, err := jsonpath.Parse(pathStr)
	if err != nil {
		return 0, syntaxErr("%v", err)
	}

	if _, exists := e.document(key); !exists {
		return 0, nil
	}

	if path.IsRoot() {
		e.deleteKey(key)

		return 1, nil
	}

	clone, _, _ := e.cloneForWrite(key)

	results := jsonpath.Dedup(jsonpath.Eval(clone, path))
	if len(results) == 0 {
		e.discard(clone)

		return 0, nil
	}

	ordered := jsonpath.SortForDeletion(results)

	count := 0

	for _, r := range ordered {
		if !r.HasCursor {
			continue
		}

		if r.Cursor.Delete(e.tbl) {
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
