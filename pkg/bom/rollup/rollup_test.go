package rollup

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
)

func buildTree(t *testing.T, records []bom.ComponentNode) *tree.Tree {
	t.Helper()
	tr, err := tree.Build(records, bom.Limits{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tr
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApply(t *testing.T) {
	records := []bom.ComponentNode{
		{
			ID: "root", BOMID: "b1", ComponentID: "ASSY", ComponentType: bom.SubAssembly,
			Sequence: 1, Quantity: dec("1"), UnitCost: dec("0"), IsActive: true,
		},
		{
			ID: "plate", BOMID: "b1", ComponentID: "PLATE", ComponentType: bom.RawMaterial,
			ParentID: "root", Sequence: 1, Quantity: dec("2"), ScrapRate: dec("5"),
			UnitCost: dec("10.50"), IsActive: true,
		},
		{
			ID: "bolt", BOMID: "b1", ComponentID: "BOLT", ComponentType: bom.PurchasedPart,
			ParentID: "root", Sequence: 2, Quantity: dec("8"), UnitCost: dec("0.25"),
			IsActive: true,
		},
	}
	tr := buildTree(t, records)

	res := Apply(tr, Options{})

	// plate: 2 × 1.05 = 2.1 actual, 2.1 × 10.50 = 22.05
	// bolt:  8 × 0.25 = 2
	if got := res.GrandTotal; !got.Equal(dec("24.05")) {
		t.Errorf("GrandTotal = %s, want 24.05", got)
	}
	if res.Items != 3 {
		t.Errorf("Items = %d, want 3", res.Items)
	}
	if !tr.TotalCost.Equal(res.GrandTotal) {
		t.Errorf("tree TotalCost = %s, want %s", tr.TotalCost, res.GrandTotal)
	}

	plate, _ := tr.ByID("plate")
	if !plate.ActualQuantity.Equal(dec("2.1")) {
		t.Errorf("plate ActualQuantity = %s, want 2.1", plate.ActualQuantity)
	}
	if !plate.TotalCost.Equal(dec("22.05")) {
		t.Errorf("plate TotalCost = %s, want 22.05", plate.TotalCost)
	}

	if !res.CostByLevel[0].Equal(dec("0")) {
		t.Errorf("level 0 cost = %s, want 0", res.CostByLevel[0])
	}
	if !res.CostByLevel[1].Equal(dec("24.05")) {
		t.Errorf("level 1 cost = %s, want 24.05", res.CostByLevel[1])
	}
}

func TestApply_InactiveScoping(t *testing.T) {
	records := []bom.ComponentNode{
		{
			ID: "root", BOMID: "b1", ComponentID: "ASSY", ComponentType: bom.SubAssembly,
			Sequence: 1, Quantity: dec("1"), UnitCost: dec("100"), IsActive: true,
		},
		{
			ID: "gone", BOMID: "b1", ComponentID: "GONE", ComponentType: bom.RawMaterial,
			ParentID: "root", Sequence: 1, Quantity: dec("3"), UnitCost: dec("50"),
			IsActive: false,
		},
	}

	tr := buildTree(t, records)
	res := Apply(tr, Options{})
	if !res.GrandTotal.Equal(dec("100")) {
		t.Errorf("GrandTotal = %s, want 100", res.GrandTotal)
	}
	if res.Items != 1 {
		t.Errorf("Items = %d, want 1", res.Items)
	}

	// Derived fields are still written for the excluded node.
	gone, _ := tr.ByID("gone")
	if !gone.TotalCost.Equal(dec("150")) {
		t.Errorf("inactive TotalCost = %s, want 150", gone.TotalCost)
	}

	tr = buildTree(t, records)
	res = Apply(tr, Options{IncludeInactiveItems: true})
	if !res.GrandTotal.Equal(dec("250")) {
		t.Errorf("GrandTotal with inactive = %s, want 250", res.GrandTotal)
	}
	if res.Items != 2 {
		t.Errorf("Items with inactive = %d, want 2", res.Items)
	}
}

func TestApply_NoFloatDrift(t *testing.T) {
	records := []bom.ComponentNode{{
		ID: "root", BOMID: "b1", ComponentID: "ASSY", ComponentType: bom.SubAssembly,
		Sequence: 1, Quantity: dec("1"), UnitCost: dec("0"), IsActive: true,
	}}
	for i := 0; i < 10000; i++ {
		records = append(records, bom.ComponentNode{
			ID: "n" + decimal.NewFromInt(int64(i)).String(), BOMID: "b1",
			ComponentID: "PART", ComponentType: bom.RawMaterial, ParentID: "root",
			Sequence: i + 1, Quantity: dec("1"), UnitCost: dec("0.1"), IsActive: true,
		})
	}

	res := Apply(buildTree(t, records), Options{})
	if !res.GrandTotal.Equal(dec("1000")) {
		t.Errorf("GrandTotal = %s, want exactly 1000", res.GrandTotal)
	}
}

func TestLevels(t *testing.T) {
	r := Result{CostByLevel: map[int]decimal.Decimal{
		2: dec("1"), 0: dec("1"), 1: dec("1"),
	}}
	got := r.Levels()
	want := []int{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Levels() = %v, want %v", got, want)
		}
	}
}
