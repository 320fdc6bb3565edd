package numfmt

import "strconv"

// FormatInt formats an integer node value in plain decimal, as required by
// JSON.TYPE's integer/number split.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat formats a non-integer number using the shortest decimal
// representation that reparses to the same IEEE-754 double. Callers that
// still hold the original lexical form should prefer it; FormatFloat is
// only reached after an arithmetic mutation discards that form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
