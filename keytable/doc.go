// Package keytable interns object member names shared across every document
// held by the engine. Each object member stores a [Handle] instead of a raw
// string, so repeated key names (common across sibling objects produced by
// the same writer) share one backing allocation.
//
// The table is reference-counted: [Table.Intern] increments the count for an
// existing entry or creates a new one, and [Table.Release] decrements it,
// freeing the entry once the last holder lets go. Table methods are safe for
// concurrent use; the engine itself only ever calls them from the single
// command-dispatch goroutine, but a background snapshot writer spawned by
// the host may read the table concurrently with writes (see the engine's
// concurrency notes), so the table guards its own state with a mutex rather
// than relying on single-writer assumptions.
package keytable
