package bom

import (
	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// ValidateNode checks a component record's fields at the boundary, before it
// reaches the engine. It rejects:
//
//   - Empty ID, BOMID, or ComponentID
//   - Unknown component types
//   - Negative quantity
//   - Scrap rate outside [0, 100]
//   - Negative unit cost
//   - Negative sequence
//
// Structural constraints (acyclicity, sibling sequence uniqueness, leaf-only
// types) are the tree builder's responsibility; ValidateNode looks at a single
// record in isolation.
func ValidateNode(n ComponentNode) error {
	if n.ID == "" {
		return errors.New(errors.ErrCodeInvalidField, "node ID cannot be empty")
	}
	if n.BOMID == "" {
		return errors.New(errors.ErrCodeInvalidField, "node %s: BOM ID cannot be empty", n.ID)
	}
	if n.ComponentID == "" {
		return errors.New(errors.ErrCodeInvalidField, "node %s: component ID cannot be empty", n.ID)
	}
	if !n.ComponentType.IsValid() {
		return errors.New(errors.ErrCodeInvalidField, "node %s: unknown component type %q", n.ID, n.ComponentType)
	}
	if n.Quantity.IsNegative() {
		return errors.New(errors.ErrCodeInvalidField, "node %s: quantity %s is negative", n.ID, n.Quantity)
	}
	if n.ScrapRate.IsNegative() || n.ScrapRate.GreaterThan(hundred) {
		return errors.New(errors.ErrCodeInvalidField, "node %s: scrap rate %s outside [0, 100]", n.ID, n.ScrapRate)
	}
	if n.UnitCost.IsNegative() {
		return errors.New(errors.ErrCodeInvalidField, "node %s: unit cost %s is negative", n.ID, n.UnitCost)
	}
	if n.Sequence < 0 {
		return errors.New(errors.ErrCodeInvalidField, "node %s: sequence %d is negative", n.ID, n.Sequence)
	}
	if n.ParentID == n.ID {
		return errors.New(errors.ErrCodeStructuralCycle, "node %s is its own parent", n.ID)
	}
	return nil
}

// ValidateNodes validates every record in a snapshot, returning the first
// failure encountered.
func ValidateNodes(nodes []ComponentNode) error {
	for _, n := range nodes {
		if err := ValidateNode(n); err != nil {
			return err
		}
	}
	return nil
}
