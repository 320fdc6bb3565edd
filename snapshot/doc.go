// Package snapshot serializes a document tree to a compact binary form
// suitable for persisting alongside the rest of a keyspace snapshot, and
// reads it back.
//
// The wire form is a length-prefixed encoding in the style of BSON: every
// record opens with a format byte followed by a little-endian uint32 byte
// count covering the whole record (format byte and count included), so a
// reader can skip a record it
// does not want to fully decode without parsing it. Member names inside
// an encoded object are written as plain UTF-8 bytes, not key-table
// handles -- the table is process-local and rebuilt on decode by
// interning each name as it is read.
//
// Decode also accepts records written by the format's previous
// generation (tag [FormatLegacy]), which lacked the top-level size
// prefix used for record skipping. Both formats otherwise share the same
// per-node tag and body encoding.
package snapshot
