package tree

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

// Warning reports a non-fatal structural issue found during a build, such as
// an orphan record degraded to a root.
type Warning struct {
	Code    errors.Code
	NodeID  string
	Message string
}

// CycleError describes a parent-link cycle among flat records.
// Path holds the node IDs along the cycle, first node repeated at the end.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("parent cycle: %s", strings.Join(e.Path, " -> "))
}

// Tree is one BOM's components as a flat arena of nodes addressed by index,
// with children stored as index lists. Roots sit at level 0 and every node's
// level is one greater than its parent's.
//
// The zero value is not usable - trees are produced by [Build].
type Tree struct {
	nodes    []bom.ComponentNode
	children [][]int
	parent   []int // -1 for roots
	roots    []int
	byID     map[string]int

	// TotalItems is the number of nodes in the tree, orphan roots included.
	TotalItems int

	// TotalCost is the sum of extended cost over active nodes.
	TotalCost decimal.Decimal

	// MaxLevel is the deepest level assigned, or -1 for an empty tree.
	MaxLevel int

	// Warnings lists non-fatal issues found during the build.
	Warnings []Warning
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a pointer to the node at arena index i.
// The pointer refers into the arena, so writes (e.g. derived cost fields set
// by the roll-up calculator) are visible to all readers of the tree.
func (t *Tree) Node(i int) *bom.ComponentNode { return &t.nodes[i] }

// Nodes returns the arena slice in build order (breadth-first from roots).
// The slice is live; treat it as read-only.
func (t *Tree) Nodes() []bom.ComponentNode { return t.nodes }

// Index returns the arena index for a node ID and true, or -1 and false.
func (t *Tree) Index(id string) (int, bool) {
	i, ok := t.byID[id]
	if !ok {
		return -1, false
	}
	return i, ok
}

// ByID returns the node with the given ID and true, or nil and false.
func (t *Tree) ByID(id string) (*bom.ComponentNode, bool) {
	i, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return &t.nodes[i], true
}

// Children returns the arena indexes of i's children, sorted by sequence.
// The slice is live; treat it as read-only.
func (t *Tree) Children(i int) []int { return t.children[i] }

// Parent returns the arena index of i's parent, or -1 for roots.
func (t *Tree) Parent(i int) int { return t.parent[i] }

// Roots returns the arena indexes of the roots, sorted by sequence.
// Orphan records degraded to roots come after the true roots.
func (t *Tree) Roots() []int { return t.roots }

// Ancestors returns the arena indexes on the path from i's parent up to its
// root, nearest ancestor first.
func (t *Tree) Ancestors(i int) []int {
	var out []int
	for p := t.parent[i]; p >= 0; p = t.parent[p] {
		out = append(out, p)
	}
	return out
}

// Walk visits the tree in depth-first pre-order: each root in sequence order,
// then its children recursively. The visit function receives the arena index;
// returning false stops the walk.
func (t *Tree) Walk(visit func(i int) bool) {
	var rec func(i int) bool
	rec = func(i int) bool {
		if !visit(i) {
			return false
		}
		for _, c := range t.children[i] {
			if !rec(c) {
				return false
			}
		}
		return true
	}
	for _, r := range t.roots {
		if !rec(r) {
			return
		}
	}
}

// PreOrder returns the arena indexes in depth-first pre-order.
func (t *Tree) PreOrder() []int {
	out := make([]int, 0, len(t.nodes))
	t.Walk(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}
