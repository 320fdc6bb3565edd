// Package schemagen infers a JSON Schema (Draft 7) from a document tree,
// backing the JSON.DEBUG SCHEMA introspection subcommand. Object members
// become schema properties (all required, since every member present in
// a concrete document necessarily exists), array elements are widened to
// a single items schema when they share a compatible type, and scalars
// map onto their JSON Schema primitive directly.
package schemagen
