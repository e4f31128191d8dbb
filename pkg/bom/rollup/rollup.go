// Package rollup derives scrap-adjusted quantities and costs over a built
// component tree and aggregates cost per level.
//
// All arithmetic is fixed-point decimal so large roll-ups carry no
// floating-point drift. The scrap adjustment is applied per node; it does not
// compound through ancestors.
package rollup

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
)

// Result aggregates rolled-up costs over one tree.
type Result struct {
	// CostByLevel sums extended cost per tree level over in-scope nodes.
	CostByLevel map[int]decimal.Decimal

	// GrandTotal sums extended cost over all in-scope nodes.
	GrandTotal decimal.Decimal

	// Items is the number of in-scope nodes.
	Items int
}

// Options controls which nodes a roll-up covers.
type Options struct {
	// IncludeInactiveItems keeps logically removed nodes in the totals.
	IncludeInactiveItems bool
}

// Apply populates every node's ActualQuantity and TotalCost in place,
// refreshes the tree's TotalCost, and returns per-level aggregates.
//
// Derived fields are written for every node regardless of options; the
// options only scope the returned aggregates and the tree total.
func Apply(t *tree.Tree, opts Options) Result {
	res := Result{CostByLevel: make(map[int]decimal.Decimal)}

	for i := 0; i < t.Len(); i++ {
		n := t.Node(i)
		*n = bom.Derive(*n)

		if !opts.IncludeInactiveItems && !n.IsActive {
			continue
		}
		res.Items++
		res.GrandTotal = res.GrandTotal.Add(n.TotalCost)
		res.CostByLevel[n.Level] = res.CostByLevel[n.Level].Add(n.TotalCost)
	}

	t.TotalCost = res.GrandTotal
	return res
}

// Levels returns the levels present in the result in ascending order.
func (r Result) Levels() []int {
	return slices.Sorted(maps.Keys(r.CostByLevel))
}
