package bom

import "github.com/shopspring/decimal"

// Default engine limits. The depth and node budgets bound every traversal so
// that pathological or adversarial inputs fail with a typed error instead of
// looping; they substitute for a timeout.
const (
	DefaultMaxDepth = 100
	DefaultMaxNodes = 100_000

	// CostPrecision is the number of decimal places kept by cost and
	// quantity roll-ups.
	CostPrecision = 4
)

// DefaultCriticalCostThreshold is the total cost above which a node counts as
// critical regardless of other rules.
var DefaultCriticalCostThreshold = decimal.NewFromInt(1000)

// Limits bounds engine traversals and parameterizes derived values.
// The zero value is usable: WithDefaults fills unset fields.
type Limits struct {
	// MaxDepth caps tree depth during builds and ancestor walks.
	MaxDepth int `toml:"max_depth"`

	// MaxNodes caps the number of nodes visited by any single traversal,
	// including product-graph reachability checks.
	MaxNodes int `toml:"max_nodes"`

	// CriticalCostThreshold feeds the statistics aggregator's critical-item
	// rule.
	CriticalCostThreshold decimal.Decimal `toml:"critical_cost_threshold"`
}

// DefaultLimits returns the standard engine limits.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:              DefaultMaxDepth,
		MaxNodes:              DefaultMaxNodes,
		CriticalCostThreshold: DefaultCriticalCostThreshold,
	}
}

// WithDefaults returns a copy of l with zero fields replaced by defaults.
func (l Limits) WithDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultMaxNodes
	}
	if l.CriticalCostThreshold.IsZero() {
		l.CriticalCostThreshold = DefaultCriticalCostThreshold
	}
	return l
}
