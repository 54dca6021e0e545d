// Package graph reconstructs branch/merge topology from a flattened git log
// and renders it as a mermaid gitGraph block.
//
// The package works in three stages:
//   - Parsing: raw pipe-delimited log lines become Record values
//   - Emission: an oldest-first fold over the records produces a sequence of
//     renderer-agnostic Ops (root, commit, branch, checkout, merge)
//   - Rendering: the Op sequence is serialized to mermaid gitGraph text
//
// Branch membership of merge parents is resolved heuristically by matching
// parent identifiers against the last-seen head of each tracked branch. When
// the source branch of a merge falls outside the queried window the merge
// degrades to a plain commit; that is deliberate lossy behavior, not an error.
package graph
