// Package diff computes a classified difference between two versions of the
// same product's BOM.
//
// # Matching
//
// Two nodes are the same logical component iff their component IDs are equal
// and their structural paths (the chain of ancestor component IDs from the
// root) are equal. Node IDs are deliberately ignored: re-inserting the same
// component at the same position under a fresh record ID is not a change.
// When duplicate siblings share a component ID at the same path, they are
// paired in sequence order, first to first.
//
// # Classification
//
// Matched pairs are classified by the first differing field group:
// quantity, then unit cost, then the remaining properties (optional flag,
// scrap rate, position, process step). Identical pairs are counted as
// unchanged but not emitted. Unmatched source nodes are REMOVED, unmatched
// target nodes ADDED.
//
// Both inputs must assemble into valid trees; a structural error on either
// side refuses the diff and is surfaced instead.
package diff

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

// Type classifies one difference.
type Type string

// Difference types.
const (
	Added             Type = "ADDED"
	Removed           Type = "REMOVED"
	QuantityChanged   Type = "QUANTITY_CHANGED"
	CostChanged       Type = "COST_CHANGED"
	PropertiesChanged Type = "PROPERTIES_CHANGED"
)

// Difference is one classified change between the two versions.
// SourceNode is nil for ADDED, TargetNode is nil for REMOVED; both are set
// for change types.
type Difference struct {
	Type       Type               `json:"type"`
	SourceNode *bom.ComponentNode `json:"source_node,omitempty"`
	TargetNode *bom.ComponentNode `json:"target_node,omitempty"`
}

// Statistics summarizes a diff.
type Statistics struct {
	// TotalItems is the number of distinct logical components across both
	// versions (matched pairs count once).
	TotalItems     int `json:"total_items"`
	AddedItems     int `json:"added_items"`
	RemovedItems   int `json:"removed_items"`
	ModifiedItems  int `json:"modified_items"`
	UnchangedItems int `json:"unchanged_items"`

	// CostDifference is the target's total cost minus the source's, over
	// in-scope nodes.
	CostDifference decimal.Decimal `json:"cost_difference"`
}

// Result is the ordered difference list plus summary statistics.
// Differences follow target pre-order (additions and changes in place),
// then removals in source pre-order, so the order is stable for equal
// inputs.
type Result struct {
	Differences []Difference `json:"differences"`
	Statistics  Statistics   `json:"statistics"`
}

// entry is one node occurrence keyed by structural path.
type entry struct {
	node *bom.ComponentNode
	key  string
}

// Compare diffs two flattened node lists for the same owning product.
//
// Both lists are assembled with [tree.Build] first; if either side fails
// validation the structural error is returned and no diff is produced.
// The filter scopes which nodes participate, so statistics line up with
// [stats.Aggregate] over the same filter.
func Compare(source, target []bom.ComponentNode, filter bom.Filter, limits bom.Limits) (*Result, error) {
	srcTree, err := tree.Build(source, limits)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "source version is not a valid tree")
	}
	tgtTree, err := tree.Build(target, limits)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "target version is not a valid tree")
	}

	srcEntries := collect(srcTree, filter)
	tgtEntries := collect(tgtTree, filter)

	srcByKey := groupByKey(srcEntries)
	tgtCount := make(map[string]int, len(tgtEntries))

	res := &Result{}

	// Target pre-order: matched pairs and additions.
	for _, te := range tgtEntries {
		pos := tgtCount[te.key]
		tgtCount[te.key] = pos + 1

		group := srcByKey[te.key]
		if pos >= len(group) {
			res.Differences = append(res.Differences, Difference{Type: Added, TargetNode: te.node})
			res.Statistics.AddedItems++
			continue
		}
		if d, changed := classify(group[pos], te); changed {
			res.Differences = append(res.Differences, d)
			res.Statistics.ModifiedItems++
		} else {
			res.Statistics.UnchangedItems++
		}
	}

	// Source pre-order: removals.
	for _, se := range srcEntries {
		group := srcByKey[se.key]
		matched := tgtCount[se.key]
		for i, e := range group {
			if e == se && i >= matched {
				res.Differences = append(res.Differences, Difference{Type: Removed, SourceNode: se.node})
				res.Statistics.RemovedItems++
				break
			}
		}
	}

	res.Statistics.TotalItems = res.Statistics.AddedItems + res.Statistics.RemovedItems +
		res.Statistics.ModifiedItems + res.Statistics.UnchangedItems
	res.Statistics.CostDifference = totalCost(tgtEntries).Sub(totalCost(srcEntries))

	return res, nil
}

// collect walks the tree in pre-order, derives cost fields, and returns the
// in-scope nodes with their structural path keys.
func collect(t *tree.Tree, filter bom.Filter) []*entry {
	keys := make([]string, t.Len())
	var out []*entry

	t.Walk(func(i int) bool {
		n := t.Node(i)
		*n = bom.Derive(*n)

		if p := t.Parent(i); p >= 0 {
			keys[i] = keys[p] + "\x1f" + n.ComponentID
		} else {
			keys[i] = n.ComponentID
		}

		if filter.Matches(*n) {
			out = append(out, &entry{node: n, key: keys[i]})
		}
		return true
	})
	return out
}

func groupByKey(entries []*entry) map[string][]*entry {
	m := make(map[string][]*entry, len(entries))
	for _, e := range entries {
		m[e.key] = append(m[e.key], e)
	}
	return m
}

// classify compares a matched pair and returns the difference, if any.
// Precedence: quantity, then unit cost, then remaining properties.
func classify(src, tgt *entry) (Difference, bool) {
	d := Difference{SourceNode: src.node, TargetNode: tgt.node}
	s, t := src.node, tgt.node

	switch {
	case !s.Quantity.Equal(t.Quantity):
		d.Type = QuantityChanged
	case !s.UnitCost.Equal(t.UnitCost):
		d.Type = CostChanged
	case s.IsOptional != t.IsOptional,
		!s.ScrapRate.Equal(t.ScrapRate),
		s.Position != t.Position,
		s.ProcessStep != t.ProcessStep:
		d.Type = PropertiesChanged
	default:
		return Difference{}, false
	}
	return d, true
}

func totalCost(entries []*entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.node.TotalCost)
	}
	return total
}

// PathString renders a structural path key for diagnostics, joining the
// component IDs with " / ".
func PathString(key string) string {
	return strings.ReplaceAll(key, "\x1f", " / ")
}
