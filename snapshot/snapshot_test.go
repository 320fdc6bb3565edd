package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/node"
	"go.jsondoc.dev/jsondoc/snapshot"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"object":  `{"a":1,"b":[true,false,null],"c":{"d":"e"}}`,
		"number":  `3.1400`,
		"empty":   `{}`,
		"nested":  `[[1,2],[3,[4,5]]]`,
		"strings": `["hello","worldA"]`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tbl := keytable.New()

			doc, err := jsonio.Parse(tbl, []byte(input))
			require.NoError(t, err)

			rec := snapshot.Encode(doc)

			tbl2 := keytable.New()

			decoded, n, err := snapshot.Decode(tbl2, rec)
			require.NoError(t, err)
			assert.Equal(t, len(rec), n)
			assert.True(t, node.Equal(doc, decoded))
		})
	}
}

func TestDecodeTruncatedRecordErrors(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	doc, err := jsonio.Parse(tbl, []byte(`{"a":1}`))
	require.NoError(t, err)

	rec := snapshot.Encode(doc)

	_, _, err = snapshot.Decode(keytable.New(), rec[:len(rec)-2])
	assert.ErrorIs(t, err, snapshot.ErrTruncated)
}

func TestDecodeUnknownFormatErrors(t *testing.T) {
	t.Parallel()

	_, _, err := snapshot.Decode(keytable.New(), []byte{0x99, 0, 0, 0, 0})
	assert.ErrorIs(t, err, snapshot.ErrUnknownFormat)
}

func TestDecodeAcceptsLegacyFormat(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	doc, err := jsonio.Parse(tbl, []byte(`{"title":"The World Almanac and Book of Facts 2021","price":12.99,"isbn":"123"}`))
	require.NoError(t, err)

	rec := snapshot.Encode(doc)

	// Re-tag as legacy and drop the length prefix, simulating a record
	// written by the format's previous generation.
	legacy := append([]byte{byte(snapshot.FormatLegacy)}, rec[5:]...)

	tbl2 := keytable.New()

	decoded, _, err := snapshot.Decode(tbl2, legacy)
	require.NoError(t, err)
	assert.True(t, node.Equal(doc, decoded))
}
