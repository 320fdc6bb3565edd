package jsonio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/keytable"
)

func TestRoundTripCompact(t *testing.T) {
	t.Parallel()

	tcs := []string{
		`{}`,
		`[]`,
		`{"a":"1","b":"2","c":"3"}`,
		`[0,1,2,3]`,
		`"hello"`,
		`true`,
		`false`,
		`null`,
		`27`,
		`-9223372036854775808`,
		`0.3000000`,
		`1.5E+10`,
		`{"愛":"love","tab\t":"end\n"}`,
	}

	for _, in := range tcs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			tbl := keytable.New()

			v, err := jsonio.Parse(tbl, []byte(in))
			require.NoError(t, err)

			out := jsonio.Format(v, jsonio.Compact)
			assert.Equal(t, in, string(out))
		})
	}
}

func TestDuplicateMemberNamesCollapseToLast(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	v, err := jsonio.Parse(tbl, []byte(`{"a":1,"a":2}`))
	require.NoError(t, err)

	assert.Equal(t, 1, v.ObjectLen())

	got, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Int())
}

func TestPrettyPrintingUsesIndentSpaceNewline(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	v, err := jsonio.Parse(tbl, []byte(`{"a":1,"b":[2,3]}`))
	require.NoError(t, err)

	out := jsonio.Format(v, jsonio.Options{Indent: "  ", Space: " ", Newline: "\n"})

	want := "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}"
	assert.Equal(t, want, string(out))
}

func TestInvalidInputsRejected(t *testing.T) {
	t.Parallel()

	invalid := []string{
		`{a:1}`,
		`[1,]`,
		`tru`,
		`{"a":1,}`,
		``,
		`"unterminated`,
		`{"a" 1}`,
	}

	for _, in := range invalid {
		in := in

		t.Run(in, func(t *testing.T) {
			t.Parallel()

			tbl := keytable.New()
			_, err := jsonio.Parse(tbl, []byte(in))
			require.Error(t, err)
			require.ErrorIs(t, err, jsonio.ErrSyntax)
		})
	}
}

func TestUnicodeEscapeSurrogatePair(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	v, err := jsonio.Parse(tbl, []byte("\"\\ud83d\\ude00\""))
	require.NoError(t, err)
	assert.Equal(t, "😀", v.String())
}

func TestNullByteSurvivesRoundTrip(t *testing.T) {
	t.Parallel()

	tbl := keytable.New()

	input := []byte(`"` + ` ` + `"`)

	v, err := jsonio.Parse(tbl, input)
	require.NoError(t, err)
	assert.Equal(t, "\x00", v.String())

	out := jsonio.Format(v, jsonio.Compact)
	assert.Equal(t, string(input), string(out))
}
