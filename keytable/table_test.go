package keytable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/keytable"
)

func TestInternSharesEntry(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	h1 := tbl.Intern("name")
	h2 := tbl.Intern("name")

	assert.Equal(t, "name", h1.Name())
	assert.Equal(t, h1.Name(), h2.Name())
	assert.Equal(t, 1, tbl.Len())

	tbl.Release(h1)
	assert.Equal(t, 1, tbl.Len(), "entry should survive while h2 still holds it")

	tbl.Release(h2)
	assert.Equal(t, 0, tbl.Len(), "entry should be freed once the last handle releases")
}

func TestCheckDetectsConsistentTable(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()
	tbl.Intern("a")
	tbl.Intern("b")

	msg, ok := tbl.Check()
	require.True(t, ok)
	assert.NotEmpty(t, msg)
}

func TestDistributionBucketsByRefCount(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	h := tbl.Intern("hot")
	for range 10 {
		tbl.Retain(h)
	}

	tbl.Intern("cold")

	dist := tbl.Distribution()
	assert.Equal(t, 1, dist["1"])
	assert.Equal(t, 1, dist["5-16"])
}
