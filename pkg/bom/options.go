package bom

import (
	"slices"

	"github.com/shopspring/decimal"
)

// LevelRange bounds node levels inclusively. Nil ends are unbounded.
type LevelRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// CostRange bounds node total cost inclusively. Nil ends are unbounded.
type CostRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// Filter selects the node population that statistics and diffs operate on.
// The statistics aggregator and the diff engine accept the same filter so
// comparisons are computed over matching populations.
//
// The zero value is not the default - use DefaultFilter, which includes
// optional items. A zero Filter excludes them.
type Filter struct {
	// IncludeInactiveItems keeps logically removed nodes in scope.
	IncludeInactiveItems bool `json:"include_inactive_items,omitempty"`

	// IncludeOptionalItems keeps optional nodes in scope. Defaults to true
	// via DefaultFilter.
	IncludeOptionalItems bool `json:"include_optional_items"`

	// ComponentTypeFilter restricts scope to the listed types.
	// Empty means all types.
	ComponentTypeFilter []ComponentType `json:"component_type_filter,omitempty"`

	// LevelRange restricts scope by node level.
	LevelRange LevelRange `json:"level_range,omitempty"`

	// CostRange restricts scope by rolled-up total cost.
	CostRange CostRange `json:"cost_range,omitempty"`
}

// DefaultFilter returns the standard filter: active nodes only, optional
// items included, all component types, unbounded level and cost.
func DefaultFilter() Filter {
	return Filter{IncludeOptionalItems: true}
}

// Matches reports whether the node is in scope under the filter.
// Cost comparison uses the node's rolled-up TotalCost, so callers should run
// the roll-up calculator before filtering on cost.
func (f Filter) Matches(n ComponentNode) bool {
	if !f.IncludeInactiveItems && !n.IsActive {
		return false
	}
	if !f.IncludeOptionalItems && n.IsOptional {
		return false
	}
	if len(f.ComponentTypeFilter) > 0 && !slices.Contains(f.ComponentTypeFilter, n.ComponentType) {
		return false
	}
	if f.LevelRange.Min != nil && n.Level < *f.LevelRange.Min {
		return false
	}
	if f.LevelRange.Max != nil && n.Level > *f.LevelRange.Max {
		return false
	}
	if f.CostRange.Min != nil && n.TotalCost.LessThan(*f.CostRange.Min) {
		return false
	}
	if f.CostRange.Max != nil && n.TotalCost.GreaterThan(*f.CostRange.Max) {
		return false
	}
	return true
}

// Apply returns the nodes in scope under the filter, preserving order.
func (f Filter) Apply(nodes []ComponentNode) []ComponentNode {
	out := make([]ComponentNode, 0, len(nodes))
	for _, n := range nodes {
		if f.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}
