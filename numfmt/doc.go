// Package numfmt scans and formats the JSON number grammar used by the
// document tree.
//
// Scanning classifies a lexical token as an integer (no fraction, no
// exponent, fits in signed 64-bit) or a non-integer number, and keeps the
// original byte slice so a pure parse-then-serialize round trip can return
// it unchanged. Formatting produces the canonical decimal form for integers
// and a shortest round-trip form for numbers that have been touched by
// arithmetic.
package numfmt
