// Package stats computes summary statistics over a set of BOM component
// records in a single O(n) pass.
//
// The aggregator accepts the same filter options as the diff engine so that
// statistics for two versions are always computed over matching populations.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
)

// Statistics summarizes a node population.
type Statistics struct {
	// TotalItems is the number of in-scope nodes.
	TotalItems int `json:"total_items"`

	// ActiveItems counts in-scope nodes with IsActive set.
	ActiveItems int `json:"active_items"`

	// CountByType counts in-scope nodes per component type.
	CountByType map[bom.ComponentType]int `json:"count_by_type"`

	// CountByLevel counts in-scope nodes per tree level.
	CountByLevel map[int]int `json:"count_by_level"`

	// CostByLevel sums extended cost per tree level.
	CostByLevel map[int]decimal.Decimal `json:"cost_by_level"`

	// OptionalItems counts in-scope nodes flagged optional.
	OptionalItems int `json:"optional_items"`

	// CriticalItems counts nodes that are either mandatory or whose total
	// cost exceeds the configured threshold.
	CriticalItems int `json:"critical_items"`

	// TotalCost sums extended cost over active in-scope nodes.
	TotalCost decimal.Decimal `json:"total_cost"`

	// AverageCostPerItem is TotalCost divided by ActiveItems.
	AverageCostPerItem decimal.Decimal `json:"average_cost_per_item"`
}

// Aggregate computes statistics over the nodes selected by the filter.
//
// Derived cost fields are recomputed from quantity, scrap rate, and unit
// cost before filtering, so callers do not need to run the roll-up
// calculator first. The critical-item rule uses limits.CriticalCostThreshold.
func Aggregate(nodes []bom.ComponentNode, filter bom.Filter, limits bom.Limits) Statistics {
	limits = limits.WithDefaults()

	s := Statistics{
		CountByType:  make(map[bom.ComponentType]int),
		CountByLevel: make(map[int]int),
		CostByLevel:  make(map[int]decimal.Decimal),
	}

	for _, n := range nodes {
		n = bom.Derive(n)
		if !filter.Matches(n) {
			continue
		}

		s.TotalItems++
		s.CountByType[n.ComponentType]++
		s.CountByLevel[n.Level]++
		s.CostByLevel[n.Level] = s.CostByLevel[n.Level].Add(n.TotalCost)

		if n.IsActive {
			s.ActiveItems++
			s.TotalCost = s.TotalCost.Add(n.TotalCost)
		}
		if n.IsOptional {
			s.OptionalItems++
		}
		if !n.IsOptional || n.TotalCost.GreaterThan(limits.CriticalCostThreshold) {
			s.CriticalItems++
		}
	}

	if s.ActiveItems > 0 {
		s.AverageCostPerItem = s.TotalCost.DivRound(decimal.NewFromInt(int64(s.ActiveItems)), bom.CostPrecision)
	}
	return s
}
