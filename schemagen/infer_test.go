package schemagen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/schemagen"
)

func TestGenerateScalarTypes(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	cases := map[string]string{
		"null":    "null",
		"boolean": "true",
		"integer": "1",
		"number":  "1.5",
		"string":  `"s"`,
	}

	for want, src := range cases {
		doc, err := jsonio.Parse(tbl, []byte(src))
		require.NoError(t, err)

		s := schemagen.Generate(doc)
		assert.Equal(t, want, s.Type)
		assert.Equal(t, "http://json-schema.org/draft-07/schema#", s.Schema)
	}
}

func TestGenerateObjectProperties(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	doc, err := jsonio.Parse(tbl, []byte(`{"name":"a","age":3,"tags":["x","y"]}`))
	require.NoError(t, err)

	s := schemagen.Generate(doc)
	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"name", "age", "tags"}, s.Required)
	require.Contains(t, s.Properties, "name")
	assert.Equal(t, "string", s.Properties["name"].Type)
	assert.Equal(t, "integer", s.Properties["age"].Type)
	assert.Equal(t, "array", s.Properties["tags"].Type)
	require.NotNil(t, s.Properties["tags"].Items)
	assert.Equal(t, "string", s.Properties["tags"].Items.Type)
}

func TestGenerateArrayWidensMixedNumericTypes(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	doc, err := jsonio.Parse(tbl, []byte(`[1, 2.5, 3]`))
	require.NoError(t, err)

	s := schemagen.Generate(doc)
	require.NotNil(t, s.Items)
	assert.Equal(t, "number", s.Items.Type)
}

func TestGenerateArrayOfIncompatibleTypesHasUnconstrainedItems(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	doc, err := jsonio.Parse(tbl, []byte(`[1, "a", true]`))
	require.NoError(t, err)

	s := schemagen.Generate(doc)
	require.NotNil(t, s.Items)
	assert.Equal(t, "", s.Items.Type)
}

func TestGenerateEmptyArrayHasNoItemsSchema(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	doc, err := jsonio.Parse(tbl, []byte(`[]`))
	require.NoError(t, err)

	s := schemagen.Generate(doc)
	assert.Nil(t, s.Items)
}
