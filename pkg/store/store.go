// Package store provides the node store: the system of record for flat BOM
// component records and the product reference graph.
//
// The engine packages never touch a store - they compute over immutable
// snapshots. The store sits in front of them and owns the mutation
// lifecycle from the data model:
//
//   - Attach creates a node, gated by the cycle guard immediately before
//     commit under optimistic concurrency.
//   - Update mutates fields; a parent change is re-validated like an attach.
//   - Deactivate removes a node logically (IsActive=false). Nodes are never
//     deleted physically.
//
// Every mutation carries the version the caller's snapshot was read at. If
// the BOM changed since, the mutation is rejected with VERSION_CONFLICT and
// the caller re-snapshots and retries; the store never retries internally.
package store

import (
	"context"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/guard"
)

// Store supplies flat component records per BOM and the product reference
// graph, and owns node lifecycle mutations.
type Store interface {
	// ListItems returns the flat records of one BOM together with the
	// version the snapshot was read at.
	ListItems(ctx context.Context, bomID string) ([]bom.ComponentNode, int64, error)

	// ListProductEdges returns the product reference edges reachable from
	// the given product, the sub-graph the cycle guard traverses.
	ListProductEdges(ctx context.Context, productID string) ([]guard.Edge, error)

	// Attach creates a new component node under the requested parent.
	// The cycle guard runs immediately before commit; a stale
	// ExpectedVersion fails with VERSION_CONFLICT.
	Attach(ctx context.Context, req AttachRequest) (bom.ComponentNode, error)

	// Update replaces a node's fields. Parent changes are re-validated by
	// the cycle guard. Derived fields are recomputed by the caller's next
	// roll-up, not stored.
	Update(ctx context.Context, req UpdateRequest) (bom.ComponentNode, error)

	// Deactivate logically removes a node (and leaves its subtree in
	// place). Physical deletion is not offered.
	Deactivate(ctx context.Context, bomID, nodeID string, expectedVersion int64) error
}

// AttachRequest describes a node creation.
type AttachRequest struct {
	// BOMID is the BOM gaining the node.
	BOMID string

	// OwnerProductID is the product owning the BOM, used by the global
	// cycle check.
	OwnerProductID string

	// Node carries the new component's fields. ID may be empty, in which
	// case the store mints one. ParentID empty attaches at the root.
	Node bom.ComponentNode

	// ExpectedVersion is the version the caller's snapshot was read at.
	ExpectedVersion int64
}

// UpdateRequest describes a node mutation.
type UpdateRequest struct {
	BOMID          string
	OwnerProductID string

	// Node replaces the stored node with the same ID.
	Node bom.ComponentNode

	ExpectedVersion int64
}
