package bom

import (
	"github.com/shopspring/decimal"
)

// ComponentType classifies a BOM component by its role in manufacturing.
type ComponentType string

// Component types. RawMaterial, PurchasedPart, and Consumable are leaf-only:
// they may never own child components.
const (
	RawMaterial   ComponentType = "RAW_MATERIAL"
	SemiFinished  ComponentType = "SEMI_FINISHED"
	PurchasedPart ComponentType = "PURCHASED_PART"
	SubAssembly   ComponentType = "SUB_ASSEMBLY"
	Consumable    ComponentType = "CONSUMABLE"
)

// ComponentTypes lists every valid component type in display order.
var ComponentTypes = []ComponentType{
	RawMaterial, SemiFinished, PurchasedPart, SubAssembly, Consumable,
}

// IsValid reports whether t is one of the known component types.
func (t ComponentType) IsValid() bool {
	switch t {
	case RawMaterial, SemiFinished, PurchasedPart, SubAssembly, Consumable:
		return true
	}
	return false
}

// IsLeafOnly reports whether components of this type may own children.
// Raw materials, purchased parts, and consumables terminate the hierarchy.
func (t ComponentType) IsLeafOnly() bool {
	switch t {
	case RawMaterial, PurchasedPart, Consumable:
		return true
	}
	return false
}

// ComponentNode is a flat BOM component record as supplied by the node store.
// ParentID is empty for roots. Level is recomputed by the tree builder from
// parent links and must not be trusted as stored.
//
// Quantity, ScrapRate, and the cost fields use fixed-point decimals so that
// roll-ups over large trees stay exact.
type ComponentNode struct {
	ID            string          `json:"id"`
	BOMID         string          `json:"bom_id"`
	ProductID     string          `json:"product_id"`
	ComponentID   string          `json:"component_id"`
	ComponentType ComponentType   `json:"component_type"`
	ParentID      string          `json:"parent_id,omitempty"`
	Level         int             `json:"level"`
	Sequence      int             `json:"sequence"`
	Quantity      decimal.Decimal `json:"quantity"`
	ScrapRate     decimal.Decimal `json:"scrap_rate"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	IsOptional    bool            `json:"is_optional,omitempty"`
	IsActive      bool            `json:"is_active"`
	Position      string          `json:"position,omitempty"`
	ProcessStep   string          `json:"process_step,omitempty"`

	// Derived by the roll-up calculator; zero until computed.
	ActualQuantity decimal.Decimal `json:"actual_quantity,omitempty"`
	TotalCost      decimal.Decimal `json:"total_cost,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n ComponentNode) IsRoot() bool { return n.ParentID == "" }
