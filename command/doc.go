// Package command implements the JSON.* command layer: the per-operation
// contracts that combine path evaluation ([jsonpath]) and tree mutation
// ([node]) into the user-visible behavior described for each command,
// including the divergence between the legacy and JSONPath v2 dialects on
// multi-match reads and writes.
//
// [Engine] holds every document under its top-level key, plus the shared
// [keytable.Table] and [metrics.Metrics] every write touches. Every write
// method follows the same clone-before-mutate shape: clone the current
// root, apply the mutation(s) to the clone, validate limits, then either
// commit the clone (replacing the key's document and releasing the old
// root's key-table handles) or discard it (releasing the clone's handles
// and leaving the original root, and the caller's view of it, untouched).
// This is what lets a rejected or partially applied write stay invisible
// to every other command, as the engine's single-threaded dispatch model
// requires.
package command
