// Package project converts a component tree plus an expanded-node set into
// an ordered list of currently visible nodes.
//
// The projection is a pure function of (tree, expanded set): the same inputs
// always yield the same order and indices, which keyboard navigation and
// virtualized rendering rely on. Expansion state itself lives outside the
// engine; this package only consumes and returns plain sets and slices.
package project

import (
	"maps"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
)

// Set holds the IDs of expanded nodes.
type Set map[string]struct{}

// NewSet builds a set from the given IDs.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether the ID is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	return maps.Clone(s)
}

// VisibleNode is one row of the projected tree.
type VisibleNode struct {
	// Index is the node's arena index in the source tree.
	Index int

	// Node points into the tree arena.
	Node *bom.ComponentNode

	// Depth is the node's level (0 for roots).
	Depth int

	// HasChildren reports whether the node owns child components.
	HasChildren bool

	// Expanded reports whether the node's ID is in the expanded set.
	Expanded bool
}

// Visible returns the nodes currently visible under the expanded set, in
// depth-first pre-order. A node is visible iff it is a root or every one of
// its ancestors is expanded, so children are only descended into when their
// parent's ID is in the set.
//
// Visible never mutates its inputs. An empty set projects exactly the roots
// in sequence order.
func Visible(t *tree.Tree, expanded Set) []VisibleNode {
	var out []VisibleNode

	var rec func(i int)
	rec = func(i int) {
		n := t.Node(i)
		children := t.Children(i)
		out = append(out, VisibleNode{
			Index:       i,
			Node:        n,
			Depth:       n.Level,
			HasChildren: len(children) > 0,
			Expanded:    expanded.Has(n.ID),
		})
		if !expanded.Has(n.ID) {
			return
		}
		for _, c := range children {
			rec(c)
		}
	}

	for _, r := range t.Roots() {
		rec(r)
	}
	return out
}

// ExpandAll returns a set containing every node that owns children.
func ExpandAll(t *tree.Tree) Set {
	s := make(Set)
	for i := 0; i < t.Len(); i++ {
		if len(t.Children(i)) > 0 {
			s[t.Node(i).ID] = struct{}{}
		}
	}
	return s
}

// CollapseAll returns the empty set: only roots remain visible.
func CollapseAll() Set {
	return make(Set)
}

// ExpandToLevel returns a set containing every node with level at most max.
func ExpandToLevel(t *tree.Tree, max int) Set {
	s := make(Set)
	for i := 0; i < t.Len(); i++ {
		if n := t.Node(i); n.Level <= max {
			s[n.ID] = struct{}{}
		}
	}
	return s
}

// Toggle returns a new set with the node's expansion flipped. Expanding adds
// the ID; collapsing removes the ID and every descendant ID, so re-expanding
// later does not surprise the user with previously open subtrees. The input
// set is never modified.
//
// Toggling a missing ID returns an unchanged copy.
func Toggle(t *tree.Tree, s Set, id string) Set {
	out := s.Clone()
	if out == nil {
		out = make(Set)
	}

	i, ok := t.Index(id)
	if !ok {
		return out
	}

	if !s.Has(id) {
		out[id] = struct{}{}
		return out
	}

	// Collapse: remove the node and its whole subtree from the set.
	stack := []int{i}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		delete(out, t.Node(cur).ID)
		stack = append(stack, t.Children(cur)...)
	}
	return out
}
