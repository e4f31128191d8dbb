package tree

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

// Build assembles flat component records into a validated tree.
//
// Records are grouped by parent ID, levels are assigned by breadth-first
// traversal from the roots (stored levels are ignored), and siblings are
// sorted by sequence. Records whose parent ID points at a missing record are
// treated as additional roots and reported in [Tree.Warnings] with code
// ORPHAN_REFERENCE.
//
// Build fails with:
//
//   - STRUCTURAL_CYCLE when parent links form a cycle; the error chain
//     carries a [*CycleError] with the offending path
//   - INVALID_INPUT on duplicate node IDs, duplicate sibling sequences, or
//     children under a leaf-only component type
//   - TRAVERSAL_BUDGET_EXCEEDED when the record count exceeds limits.MaxNodes
//     or the tree is deeper than limits.MaxDepth
//
// Build runs in O(N log N) time (the log factor is sibling sorting) and does
// not modify the input slice.
func Build(records []bom.ComponentNode, limits bom.Limits) (*Tree, error) {
	limits = limits.WithDefaults()

	if len(records) > limits.MaxNodes {
		return nil, errors.New(errors.ErrCodeBudgetExceeded,
			"%d records exceed the %d node budget", len(records), limits.MaxNodes)
	}

	t := &Tree{
		nodes:    slices.Clone(records),
		children: make([][]int, len(records)),
		parent:   make([]int, len(records)),
		byID:     make(map[string]int, len(records)),
		MaxLevel: -1,
	}

	for i := range t.nodes {
		if _, dup := t.byID[t.nodes[i].ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"duplicate node ID %q", t.nodes[i].ID)
		}
		t.byID[t.nodes[i].ID] = i
	}

	// Classify roots, orphans, and children groups.
	var orphans []int
	for i := range t.nodes {
		n := &t.nodes[i]
		switch {
		case n.ParentID == "":
			t.parent[i] = -1
			t.roots = append(t.roots, i)
		default:
			p, ok := t.byID[n.ParentID]
			if !ok {
				t.parent[i] = -1
				orphans = append(orphans, i)
				t.Warnings = append(t.Warnings, Warning{
					Code:    errors.ErrCodeOrphanReference,
					NodeID:  n.ID,
					Message: "parent " + n.ParentID + " not found; treated as root",
				})
				continue
			}
			t.parent[i] = p
			t.children[p] = append(t.children[p], i)
		}
	}

	bySequence := func(a, b int) int {
		if c := cmp.Compare(t.nodes[a].Sequence, t.nodes[b].Sequence); c != 0 {
			return c
		}
		return cmp.Compare(t.nodes[a].ID, t.nodes[b].ID)
	}

	if err := t.validateGroups(bySequence); err != nil {
		return nil, err
	}

	slices.SortFunc(orphans, bySequence)
	t.roots = append(t.roots, orphans...)

	if err := t.assignLevels(limits); err != nil {
		return nil, err
	}

	t.TotalItems = len(t.nodes)
	total := decimal.Zero
	for i := range t.nodes {
		if t.nodes[i].IsActive {
			total = total.Add(bom.ExtendedCost(t.nodes[i]))
		}
	}
	t.TotalCost = total

	return t, nil
}

// validateGroups sorts every sibling group by sequence and enforces the
// sibling invariants: unique sequence per parent, no children under
// leaf-only component types. Orphan roots are exempt from the root sequence
// check since their grouping is already degraded.
func (t *Tree) validateGroups(bySequence func(a, b int) int) error {
	checkUnique := func(group []int, parentID string) error {
		for k := 1; k < len(group); k++ {
			a, b := &t.nodes[group[k-1]], &t.nodes[group[k]]
			if a.Sequence == b.Sequence {
				return errors.New(errors.ErrCodeInvalidInput,
					"nodes %q and %q share sequence %d under parent %q",
					a.ID, b.ID, a.Sequence, parentID)
			}
		}
		return nil
	}

	for p := range t.children {
		if len(t.children[p]) == 0 {
			continue
		}
		if typ := t.nodes[p].ComponentType; typ.IsLeafOnly() {
			return errors.New(errors.ErrCodeInvalidInput,
				"leaf-only node %q (%s) owns %d children",
				t.nodes[p].ID, typ, len(t.children[p]))
		}
		slices.SortFunc(t.children[p], bySequence)
		if err := checkUnique(t.children[p], t.nodes[p].ID); err != nil {
			return err
		}
	}

	slices.SortFunc(t.roots, bySequence)
	return checkUnique(t.roots, "")
}

// assignLevels walks the tree breadth-first from the roots, assigning
// level(node) = level(parent) + 1 with roots at level 0. Records never
// reached have parent links that form a cycle.
func (t *Tree) assignLevels(limits bom.Limits) error {
	visited := make([]bool, len(t.nodes))
	queue := make([]int, 0, len(t.nodes))

	for _, r := range t.roots {
		t.nodes[r].Level = 0
		visited[r] = true
		queue = append(queue, r)
	}
	if len(queue) > 0 {
		t.MaxLevel = 0
	}

	seen := len(queue)
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		childLevel := t.nodes[i].Level + 1
		for _, c := range t.children[i] {
			if childLevel > limits.MaxDepth {
				return errors.New(errors.ErrCodeBudgetExceeded,
					"tree deeper than the %d level budget at node %q",
					limits.MaxDepth, t.nodes[c].ID)
			}
			t.nodes[c].Level = childLevel
			if childLevel > t.MaxLevel {
				t.MaxLevel = childLevel
			}
			visited[c] = true
			seen++
			queue = append(queue, c)
		}
	}

	if seen < len(t.nodes) {
		for i := range t.nodes {
			if !visited[i] {
				cyc := t.tracePath(i)
				return errors.Wrap(errors.ErrCodeStructuralCycle, cyc,
					"bom %s contains a parent cycle", t.nodes[i].BOMID)
			}
		}
	}
	return nil
}

// tracePath follows parent links from an unreachable node until an ID
// repeats and returns the cycle as a CycleError.
func (t *Tree) tracePath(start int) *CycleError {
	order := make(map[int]int)
	var ids []string

	i := start
	for {
		if at, ok := order[i]; ok {
			path := append(slices.Clone(ids[at:]), ids[at])
			return &CycleError{Path: path}
		}
		order[i] = len(ids)
		ids = append(ids, t.nodes[i].ID)
		i = t.parent[i]
	}
}
