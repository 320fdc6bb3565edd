package jsonpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/jsonpath"
)

func TestParseDialectDetection(t *testing.T) {
	t.Parallel()

	p, err := jsonpath.Parse(".firstName")
	require.NoError(t, err)
	assert.Equal(t, jsonpath.Legacy, p.Dialect)

	p, err = jsonpath.Parse("$.firstName")
	require.NoError(t, err)
	assert.Equal(t, jsonpath.V2, p.Dialect)
}

func TestParseLegacyRejectsRecursiveDescentAndFilters(t *testing.T) {
	t.Parallel()

	invalid := []string{"..a", "[?(@.x>1)]", "[0:2]"}

	for _, in := range invalid {
		in := in

		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := jsonpath.Parse(in)
			require.Error(t, err)
		})
	}
}

func TestParseLegacyAllowsTrailingWildcardOnly(t *testing.T) {
	t.Parallel()

	_, err := jsonpath.Parse(".*")
	require.NoError(t, err)

	_, err = jsonpath.Parse(".*.a")
	require.Error(t, err)
}

func TestParseBracketForms(t *testing.T) {
	t.Parallel()

	tcs := []string{
		`$["name"]`,
		`$['name']`,
		`$[0]`,
		`$[0,1,2]`,
		`$[-1]`,
		`$[0:2]`,
		`$[0:2:1]`,
		`$[8:0:-2]`,
		`$.*`,
		`$[*]`,
		`$..a`,
		`$[?(@.x>1)]`,
		`$[?(@.x > 1 && @.y < 2)]`,
		`$[ 0 : -1 ]`,
	}

	for _, in := range tcs {
		in := in

		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := jsonpath.Parse(in)
			require.NoError(t, err)
		})
	}
}
