// Package jsonpath lexes, parses, and evaluates both path dialects the
// document engine accepts: the restricted legacy path (no leading "$",
// at most one trailing wildcard, no recursive descent) and JSONPath v2
// (leading "$", wildcards, slices, unions, recursive descent, and filter
// expressions).
//
// Both dialects share one [Path] AST and one evaluator. The AST carries
// the dialect as a flag rather than branching into two parser/evaluator
// pairs, so legacy-vs-v2 result shaping lives entirely in the command
// layer and never forks the traversal logic itself.
//
// Evaluation produces an ordered list of [Result] values, each naming the
// matched node and, where one exists, the [node.Cursor] a write would
// mutate through. Results preserve whatever multiplicity the path implies
// (e.g. "$[0,0]" yields the same position twice); callers that need each
// distinct position visited once -- every write command -- call [Dedup].
package jsonpath
