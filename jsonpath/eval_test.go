package jsonpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/jsonpath"
	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/node"
)

func mustParseDoc(t *testing.T, src string) *node.Node {
	t.Helper()

	tbl := keytable.New()

	v, err := jsonio.Parse(tbl, []byte(src))
	require.NoError(t, err)

	return v
}

func values(results []jsonpath.Result) []*node.Node {
	out := make([]*node.Node, len(results))
	for i, r := range results {
		out[i] = r.Value
	}

	return out
}

func intsOf(t *testing.T, vs []*node.Node) []int64 {
	t.Helper()

	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = v.Int()
	}

	return out
}

func TestEvalWildcardOverObjectValues(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `{"a":"1","b":"2","c":"3"}`)

	p, err := jsonpath.Parse("$.*")
	require.NoError(t, err)

	results := jsonpath.Eval(doc, p)

	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.Value.String()
	}

	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestEvalNegativeStepSlice(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `[0,1,2,3,4,5,6,7,8,9]`)

	p, err := jsonpath.Parse("$[8:0:-2]")
	require.NoError(t, err)

	got := intsOf(t, values(jsonpath.Eval(doc, p)))
	assert.Equal(t, []int64{8, 6, 4, 2}, got)
}

func TestEvalNegativeIndexUnion(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `[0,1,2,3,4,5,6,7,8,9]`)

	p, err := jsonpath.Parse("$[-10,-5,-6]")
	require.NoError(t, err)

	got := intsOf(t, values(jsonpath.Eval(doc, p)))
	assert.Equal(t, []int64{0, 5, 4}, got)
}

func TestEvalIndexUnionPreservesDuplicates(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `[0,1,2]`)

	p, err := jsonpath.Parse("$[0,1,0]")
	require.NoError(t, err)

	results := jsonpath.Eval(doc, p)
	require.Len(t, results, 3)

	deduped := jsonpath.Dedup(results)
	assert.Len(t, deduped, 2)
}

func TestEvalRecursiveDescentVisitsRootFirst(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `{"a":{"b":1,"c":{"d":2}}}`)

	p, err := jsonpath.Parse("$..d")
	require.NoError(t, err)

	got := intsOf(t, values(jsonpath.Eval(doc, p)))
	assert.Equal(t, []int64{2}, got)

	doc2 := mustParseDoc(t, `{"a":{"d":2},"d":1}`)

	got = intsOf(t, values(jsonpath.Eval(doc2, p)))
	assert.Equal(t, []int64{1, 2}, got)
}

func TestEvalFilterNumericAndPresence(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `{"store":{"books":[
		{"price":9,"isbn":"a"},
		{"price":15,"isbn":"b"},
		{"price":8},
		{"price":21,"isbn":"c"}
	]}}`)

	p, err := jsonpath.Parse(`$.store.books[?(@.price<10.0 && @.isbn)].price`)
	require.NoError(t, err)

	got := intsOf(t, values(jsonpath.Eval(doc, p)))
	assert.Equal(t, []int64{9}, got)
}

func TestEvalFilterOrShortCircuit(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `[{"a":1},{"b":2},{"a":3,"b":4}]`)

	p, err := jsonpath.Parse(`$[?(@.a==1 || @.b==2)]`)
	require.NoError(t, err)

	results := jsonpath.Eval(doc, p)
	assert.Len(t, results, 2)
}

func TestSortForDeletionOrdersDescendingIndexAndDepth(t *testing.T) {
	t.Parallel()

	doc := mustParseDoc(t, `[0,1,2,3,4,5,6,7,8,9]`)

	p, err := jsonpath.Parse("$[1,4,7,0,0,3,3]")
	require.NoError(t, err)

	results := jsonpath.Dedup(jsonpath.Eval(doc, p))
	assert.Len(t, results, 5)

	ordered := jsonpath.SortForDeletion(results)

	for i := 1; i < len(ordered); i++ {
		assert.GreaterOrEqual(t, ordered[i-1].Cursor.Step.Index, ordered[i].Cursor.Step.Index)
	}
}
