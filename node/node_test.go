package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/node"
)

func TestObjectInsertionOrderPreserved(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()
	obj := node.NewObject()

	obj.Set(tbl, "c", node.NewInt(3))
	obj.Set(tbl, "a", node.NewInt(1))
	obj.Set(tbl, "b", node.NewInt(2))

	assert.Equal(t, []string{"c", "a", "b"}, obj.Keys())
}

func TestObjectSetReplacesValueNotPosition(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()
	obj := node.NewObject()
	obj.Set(tbl, "a", node.NewInt(1))
	obj.Set(tbl, "b", node.NewInt(2))
	obj.Set(tbl, "a", node.NewInt(99))

	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(99), v.Int())
}

func TestObjectIndexSwitchoverAboveThreshold(t *testing.T) {
	t.Parallel()

	node.DefaultHashTableMinSize = 4
	t.Cleanup(func() { node.DefaultHashTableMinSize = 64 })

	tbl := keytable.New()
	obj := node.NewObject()

	assert.False(t, obj.UsesIndex())

	for i := range 5 {
		obj.Set(tbl, string(rune('a'+i)), node.NewInt(int64(i)))
	}

	assert.True(t, obj.UsesIndex())
}

func TestArrayNegativeIndexing(t *testing.T) {
	t.Parallel()

	arr := node.NewArray(node.NewInt(0), node.NewInt(1), node.NewInt(2))

	last, ok := arr.At(-1)
	require.True(t, ok)
	assert.Equal(t, int64(2), last.Int())

	first, ok := arr.At(-3)
	require.True(t, ok)
	assert.Equal(t, int64(0), first.Int())

	_, ok = arr.At(-4)
	assert.False(t, ok)
}

func TestArrayInsertAndRemove(t *testing.T) {
	t.Parallel()

	arr := node.NewArray(node.NewInt(0), node.NewInt(1), node.NewInt(2))

	require.NoError(t, arr.InsertAt(1, node.NewInt(99)))
	assert.Equal(t, []int64{0, 99, 1, 2}, intsOf(t, arr))

	require.NoError(t, arr.RemoveAt(-1))
	assert.Equal(t, []int64{0, 99, 1}, intsOf(t, arr))
}

func intsOf(t *testing.T, arr *node.Node) []int64 {
	t.Helper()

	out := make([]int64, arr.Len())
	for i, it := range arr.Items() {
		out[i] = it.Int()
	}

	return out
}

func TestDepthCountsOnlyNestedContainers(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	flat := node.NewObject()
	flat.Set(tbl, "a", node.NewInt(1))
	assert.Equal(t, 0, node.Depth(flat))

	nested := node.NewObject()
	inner := node.NewObject()
	inner.Set(tbl, "b", node.NewInt(1))
	nested.Set(tbl, "a", inner)
	assert.Equal(t, 1, node.Depth(nested))

	deeper := node.NewObject()
	deeper.Set(tbl, "a", nested)
	assert.Equal(t, 2, node.Depth(deeper))
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()
	orig := node.NewObject()
	orig.Set(tbl, "a", node.NewInt(1))

	clone := node.Clone(tbl, orig)
	clone.Set(tbl, "a", node.NewInt(2))

	origVal, _ := orig.Get("a")
	cloneVal, _ := clone.Get("a")
	assert.Equal(t, int64(1), origVal.Int())
	assert.Equal(t, int64(2), cloneVal.Int())
}

func TestEqualDeepComparesObjectsIgnoringOrder(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	a := node.NewObject()
	a.Set(tbl, "x", node.NewInt(1))
	a.Set(tbl, "y", node.NewInt(2))

	b := node.NewObject()
	b.Set(tbl, "y", node.NewInt(2))
	b.Set(tbl, "x", node.NewInt(1))

	assert.True(t, node.Equal(a, b))

	c := node.NewObject()
	c.Set(tbl, "x", node.NewInt(1))
	assert.False(t, node.Equal(a, c))
}

func TestEqualNumericCrossesIntegerAndNumber(t *testing.T) {
	t.Parallel()

	assert.True(t, node.Equal(node.NewInt(2), node.NewNumber(2.0, "")))
}
