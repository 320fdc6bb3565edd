package numfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/numfmt"
)

func TestScanValid(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		wantInt  bool
		wantI    int64
		wantF    float64
	}{
		"zero":              {"0", true, 0, 0},
		"positive integer":  {"27", true, 27, 27},
		"negative integer":  {"-27", true, -27, -27},
		"max int64":         {"9223372036854775807", true, 9223372036854775807, 9223372036854775807},
		"min int64":         {"-9223372036854775808", true, -9223372036854775808, -9223372036854775808},
		"fraction":          {"0.3000000", false, 0, 0.3},
		"negative fraction":  {"-1.5", false, 0, -1.5},
		"exponent":          {"2e10", false, 0, 2e10},
		"exponent plus":     {"2.0e+2", false, 0, 200},
		"exponent minus":    {"2.0e-2", false, 0, 0.02},
		"beyond int64 magnitude becomes number": {"9223372036854775808", false, 0, 9223372036854775808},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := numfmt.Scan(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.wantInt, got.IsInt)
			assert.Equal(t, tc.wantF, got.Float)
			assert.Equal(t, tc.input, got.Lexical)

			if tc.wantInt {
				assert.Equal(t, tc.wantI, got.Int)
			}
		})
	}
}

func TestScanInvalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"2.",
		"-2.0.",
		".2.0",
		"a2",
		"e2",
		"2.0e",
		"2.0e+",
		"2.0e+41a",
		"",
		"01",
		"-",
	}

	for _, in := range invalid {
		in := in

		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := numfmt.Scan(in)
			require.Error(t, err)
		})
	}
}

func TestScanPrefixStopsAtNonNumber(t *testing.T) {
	t.Parallel()

	got, n, err := numfmt.ScanPrefix("123,456")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, got.IsInt)
	assert.Equal(t, int64(123), got.Int)
}

func TestFormatFloatRoundTrips(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0.1, 1.5, -2.25, 1e21, 1e-7} {
		s := numfmt.FormatFloat(v)
		got, err := numfmt.Scan(s)
		require.NoError(t, err)
		assert.Equal(t, v, got.Float)
	}
}
