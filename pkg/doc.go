// Package pkg provides the core libraries of the BOM engine.
//
// # Overview
//
// The engine turns flat manufacturing BOM records into validated component
// trees and computes over them. The pkg directory is organized by concern:
//
//  1. [bom] - Domain types (component nodes, filters, limits) and validation
//  2. [bom/tree] - Flat records to validated tree assembly
//  3. [bom/guard] - Cycle prevention for attach and reparent operations
//  4. [bom/rollup] - Scrap-adjusted quantity and cost derivation
//  5. [bom/project] - Expand/collapse projection for interactive views
//  6. [bom/stats] - Population statistics
//  7. [bom/diff] - Classified differences between two BOM versions
//  8. [store] - Node store: records, product edges, mutation lifecycle
//  9. [snapshot] - Canonical JSON interchange format
//
// # Architecture
//
// The typical data flow through the engine:
//
//	Snapshot file / node store
//	         ↓
//	    [bom/tree] (assemble + validate)
//	         ↓
//	    [bom/rollup] (derive quantities and costs)
//	         ↓
//	    [bom/stats] / [bom/diff] / [bom/project]
//	         ↓
//	    CLI tables, interactive browser, DOT/SVG export
//
// Engine packages are pure: they never mutate a store. Mutations go through
// [store], which gates structural changes on [bom/guard] under optimistic
// concurrency.
package pkg
