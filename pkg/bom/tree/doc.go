// Package tree assembles flat BOM component records into a validated,
// indexed component tree.
//
// # Overview
//
// The node store supplies components as flat records linked by parent IDs.
// This package turns one BOM's records into a [Tree]: a flat arena of nodes
// addressed by index, with children stored as index lists. The arena form
// keeps ownership acyclic and makes the tree trivially shareable between the
// roll-up calculator, projector, statistics aggregator, and diff engine.
//
// # Building
//
// [Build] groups records by parent, assigns levels by breadth-first traversal
// from the roots (a stored level is never trusted), and sorts siblings by
// sequence. Malformed input is surfaced as typed errors:
//
//   - Parent-link cycles among records fail with STRUCTURAL_CYCLE and the
//     offending path.
//   - Duplicate node IDs, duplicate sibling sequences, and children under
//     leaf-only component types fail with INVALID_INPUT.
//   - Records whose parent ID points at a missing record are orphans: they
//     become additional roots and are reported as warnings, not errors.
//
// Every traversal is bounded by [bom.Limits]; exceeding the depth or node
// budget fails with TRAVERSAL_BUDGET_EXCEEDED instead of looping.
//
// # Concurrency
//
// A built Tree is immutable except through [Tree.Node] pointers, which the
// roll-up calculator uses to populate derived fields. Concurrent readers are
// safe once derivation has completed.
package tree
