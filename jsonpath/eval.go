package jsonpath

import (
	"go.jsondoc.dev/jsondoc/node"
)

// Result is one match produced by evaluating a [Path] against a document
// root. Cursor is valid only when HasCursor is true; a match at the
// document root itself (an empty path) has no cursor, since the root is
// not addressable as a child of anything.
type Result struct {
	Value     *node.Node
	Cursor    node.Cursor
	HasCursor bool

	// Depth is the number of container steps from the document root to
	// Value (a direct child of the root has Depth 1), used by
	// [SortForDeletion] to delete children before their ancestors.
	Depth int
}

// Eval evaluates p against root, returning matches in the ordering rules
// described by the path language: array index order, object insertion
// order, recursive descent root-before-children, union and slice order
// as written, with duplicates preserved.
func Eval(root *node.Node, p *Path) []Result {
	start := Result{Value: root}

	matches := []Result{start}

	for _, step := range p.Steps {
		matches = applyStep(matches, step)
	}

	return matches
}

func applyStep(in []Result, step Step) []Result {
	var out []Result

	for _, m := range in {
		out = append(out, applyStepToMatch(m, step)...)
	}

	return out
}

func applyStepToMatch(m Result, step Step) []Result {
	switch step.Kind {
	case StepName:
		return applyName(m, step.Names)
	case StepIndex:
		return applyIndex(m, step.Indices)
	case StepSlice:
		return applySlice(m, step)
	case StepWildcard:
		return applyWildcard(m)
	case StepRecursive:
		return applyRecursive(m)
	case StepFilter:
		return applyFilter(m, step.Filter)
	default:
		return nil
	}
}

func applyName(m Result, names []string) []Result {
	if m.Value.Kind() != node.KindObject {
		return nil
	}

	var out []Result

	for _, name := range names {
		v, ok := m.Value.Get(name)
		if !ok {
			continue
		}

		out = append(out, Result{
			Value:     v,
			Cursor:    node.Cursor{Parent: m.Value, Step: node.NameStep(name)},
			HasCursor: true,
			Depth:     m.Depth + 1,
		})
	}

	return out
}

func applyIndex(m Result, indices []int) []Result {
	if m.Value.Kind() != node.KindArray {
		return nil
	}

	var out []Result

	for _, idx := range indices {
		v, ok := m.Value.At(idx)
		if !ok {
			continue
		}

		out = append(out, Result{
			Value:     v,
			Cursor:    node.Cursor{Parent: m.Value, Step: node.IndexStep(node.NormalizeIndex(idx, m.Value.Len()))},
			HasCursor: true,
			Depth:     m.Depth + 1,
		})
	}

	return out
}

func applySlice(m Result, step Step) []Result {
	if m.Value.Kind() != node.KindArray {
		return nil
	}

	l := m.Value.Len()

	skip := 1
	if step.Skip != nil {
		skip = *step.Skip
	}

	if skip == 0 {
		return nil
	}

	start, stop := sliceBounds(l, step.Start, step.Stop, skip)

	var out []Result

	if skip > 0 {
		for i := start; i < stop; i += skip {
			out = append(out, sliceResult(m, i))
		}
	} else {
		for i := start; i > stop; i += skip {
			out = append(out, sliceResult(m, i))
		}
	}

	return out
}

func sliceResult(m Result, i int) Result {
	v, _ := m.Value.At(i)

	return Result{
		Value:     v,
		Cursor:    node.Cursor{Parent: m.Value, Step: node.IndexStep(i)},
		HasCursor: true,
		Depth:     m.Depth + 1,
	}
}

// sliceBounds resolves Python-style slice semantics: negative bounds count
// from the end, a negative step walks backward with stop exclusive, and
// out-of-range bounds clamp to the valid range instead of erroring.
func sliceBounds(l int, startP, stopP *int, skip int) (int, int) {
	if skip > 0 {
		start, stop := 0, l

		if startP != nil {
			start = clampSliceIndex(*startP, l)
		}

		if stopP != nil {
			stop = clampSliceIndex(*stopP, l)
		}

		return start, stop
	}

	start, stop := l-1, -1

	if startP != nil {
		start = clampBackward(*startP, l)
	}

	if stopP != nil {
		stop = clampBackward(*stopP, l)
	}

	return start, stop
}

// clampSliceIndex normalizes a possibly-negative bound for a forward
// slice into [0, l].
func clampSliceIndex(idx, l int) int {
	if idx < 0 {
		idx += l

		if idx < 0 {
			return 0
		}

		return idx
	}

	if idx > l {
		return l
	}

	return idx
}

// clampBackward normalizes a possibly-negative bound for a backward
// (negative-step) slice into [-1, l-1], since the exclusive stop of a
// backward walk may legitimately sit one position before index 0.
func clampBackward(idx, l int) int {
	if idx < 0 {
		idx += l
	}

	if idx < -1 {
		return -1
	}

	if idx > l-1 {
		return l - 1
	}

	return idx
}

func applyWildcard(m Result) []Result {
	switch m.Value.Kind() {
	case node.KindArray:
		var out []Result

		for i, it := range m.Value.Items() {
			out = append(out, Result{
				Value:     it,
				Cursor:    node.Cursor{Parent: m.Value, Step: node.IndexStep(i)},
				HasCursor: true,
				Depth:     m.Depth + 1,
			})
		}

		return out

	case node.KindObject:
		var out []Result

		for _, mem := range m.Value.Members() {
			out = append(out, Result{
				Value:     mem.Value,
				Cursor:    node.Cursor{Parent: m.Value, Step: node.NameStep(mem.Handle.Name())},
				HasCursor: true,
				Depth:     m.Depth + 1,
			})
		}

		return out

	default:
		return nil
	}
}

// applyRecursive visits m's value and every descendant, depth-first,
// root before children, children in container order.
func applyRecursive(m Result) []Result {
	out := []Result{m}

	switch m.Value.Kind() {
	case node.KindArray:
		for i, it := range m.Value.Items() {
			child := Result{
				Value:     it,
				Cursor:    node.Cursor{Parent: m.Value, Step: node.IndexStep(i)},
				HasCursor: true,
				Depth:     m.Depth + 1,
			}
			out = append(out, applyRecursive(child)...)
		}

	case node.KindObject:
		for _, mem := range m.Value.Members() {
			child := Result{
				Value:     mem.Value,
				Cursor:    node.Cursor{Parent: m.Value, Step: node.NameStep(mem.Handle.Name())},
				HasCursor: true,
				Depth:     m.Depth + 1,
			}
			out = append(out, applyRecursive(child)...)
		}
	}

	return out
}

func applyFilter(m Result, expr Expr) []Result {
	var candidates []Result

	switch m.Value.Kind() {
	case node.KindArray:
		for i, it := range m.Value.Items() {
			candidates = append(candidates, Result{
				Value:     it,
				Cursor:    node.Cursor{Parent: m.Value, Step: node.IndexStep(i)},
				HasCursor: true,
				Depth:     m.Depth + 1,
			})
		}

	case node.KindObject:
		for _, mem := range m.Value.Members() {
			candidates = append(candidates, Result{
				Value:     mem.Value,
				Cursor:    node.Cursor{Parent: m.Value, Step: node.NameStep(mem.Handle.Name())},
				HasCursor: true,
				Depth:     m.Depth + 1,
			})
		}

	default:
		return nil
	}

	var out []Result

	for _, c := range candidates {
		if evalBool(c.Value, expr) {
			out = append(out, c)
		}
	}

	return out
}

// Dedup removes later occurrences of a cursor already seen, keeping the
// first occurrence's position in the slice. Writes apply to each
// distinct position at most once; reads preserve multiplicity and must
// not call this.
func Dedup(results []Result) []Result {
	type key struct {
		parent *node.Node
		name   string
		index  int
		isName bool
	}

	seen := make(map[key]bool, len(results))

	var out []Result

	for _, r := range results {
		if !r.HasCursor {
			out = append(out, r)

			continue
		}

		k := key{parent: r.Cursor.Parent, name: r.Cursor.Step.Name, index: r.Cursor.Step.Index, isName: r.Cursor.Step.IsName}
		if seen[k] {
			continue
		}

		seen[k] = true

		out = append(out, r)
	}

	return out
}

// SortForDeletion reorders results so a batch delete processes deeper
// cursors before shallower ones, and within the same depth processes
// array cursors in descending index order -- the policy that yields
// "delete every matched position exactly once" regardless of how
// deletions upstream shift sibling indices.
func SortForDeletion(results []Result) []Result {
	out := make([]Result, len(results))
	copy(out, results)

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	return out
}

func less(a, b Result) bool {
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}

	if !a.HasCursor || !b.HasCursor {
		return false
	}

	if a.Cursor.Parent == b.Cursor.Parent && !a.Cursor.Step.IsName && !b.Cursor.Step.IsName {
		return a.Cursor.Step.Index > b.Cursor.Step.Index
	}

	return false
}
