// Package jsonio parses JSON text into the document tree and serializes it
// back out, in either compact or pretty form.
//
// The parser is hand-written rather than built on encoding/json because it
// must preserve the original lexical form of non-integer numbers (trailing
// zeros, exponent casing, excess precision) until the first arithmetic
// mutation discards it -- a round-trip guarantee encoding/json does not
// offer. Escapes, backslash-backslash, backslash-slash, and the usual
// control-character and \uXXXX escapes (including paired surrogates) are
// recognized in strings. A raw control byte U+0000-U+001F inside a string
// is a syntax error; control characters are always written back as
// escapes, so their escaped forms survive a round trip.
package jsonio
