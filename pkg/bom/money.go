package bom

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ActualQuantity returns the scrap-adjusted input quantity for a node:
//
//	quantity × (1 + scrapRate/100)
//
// rounded to CostPrecision decimal places. The scrap adjustment is applied
// per node only; it does not compound through ancestors.
func ActualQuantity(n ComponentNode) decimal.Decimal {
	factor := one.Add(n.ScrapRate.Div(hundred))
	return n.Quantity.Mul(factor).Round(CostPrecision)
}

// ExtendedCost returns the node's total cost: actualQuantity × unitCost,
// rounded to CostPrecision decimal places.
func ExtendedCost(n ComponentNode) decimal.Decimal {
	return ActualQuantity(n).Mul(n.UnitCost).Round(CostPrecision)
}

// Derive returns a copy of n with ActualQuantity and TotalCost populated.
func Derive(n ComponentNode) ComponentNode {
	n.ActualQuantity = ActualQuantity(n)
	n.TotalCost = ExtendedCost(n)
	return n
}
