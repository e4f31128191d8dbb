package diff

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// rec builds a record whose node ID differs between versions on purpose:
// matching must go by component ID and path, never by node ID.
func rec(version, componentID, parentID string, seq int, qty, cost string) bom.ComponentNode {
	return bom.ComponentNode{
		ID:            version + "-" + componentID + "-" + decimal.NewFromInt(int64(seq)).String(),
		BOMID:         "bom-" + version,
		ProductID:     "p1",
		ComponentID:   componentID,
		ComponentType: bom.SemiFinished,
		ParentID:      parentID,
		Sequence:      seq,
		Quantity:      dec(qty),
		UnitCost:      dec(cost),
		IsActive:      true,
	}
}

// baseline assembles BIKE > (FRAME, WHEEL) for one version label.
func baseline(version string) []bom.ComponentNode {
	return []bom.ComponentNode{
		rec(version, "BIKE", "", 1, "1", "0"),
		rec(version, "FRAME", version+"-BIKE-1", 1, "1", "300"),
		rec(version, "WHEEL", version+"-BIKE-1", 2, "2", "100"),
	}
}

func TestCompare_Identity(t *testing.T) {
	res, err := Compare(baseline("v1"), baseline("v2"), bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(res.Differences) != 0 {
		t.Errorf("Differences = %v, want none", res.Differences)
	}
	s := res.Statistics
	if s.UnchangedItems != 3 || s.TotalItems != 3 {
		t.Errorf("Statistics = %+v, want 3 unchanged of 3", s)
	}
	if !s.CostDifference.IsZero() {
		t.Errorf("CostDifference = %s, want 0", s.CostDifference)
	}
}

func TestCompare_AddedAndRemoved(t *testing.T) {
	source := baseline("v1")
	target := baseline("v2")[:2] // WHEEL dropped
	target = append(target, rec("v2", "BELL", "v2-BIKE-1", 3, "1", "15"))

	res, err := Compare(source, target, bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	s := res.Statistics
	if s.AddedItems != 1 || s.RemovedItems != 1 || s.UnchangedItems != 2 {
		t.Fatalf("Statistics = %+v, want 1 added, 1 removed, 2 unchanged", s)
	}
	if s.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", s.TotalItems)
	}

	var added, removed *Difference
	for i := range res.Differences {
		switch res.Differences[i].Type {
		case Added:
			added = &res.Differences[i]
		case Removed:
			removed = &res.Differences[i]
		}
	}
	if added == nil || added.TargetNode.ComponentID != "BELL" || added.SourceNode != nil {
		t.Errorf("added = %+v, want BELL with nil source", added)
	}
	if removed == nil || removed.SourceNode.ComponentID != "WHEEL" || removed.TargetNode != nil {
		t.Errorf("removed = %+v, want WHEEL with nil target", removed)
	}

	// -2×100 wheels, +1×15 bell
	if !s.CostDifference.Equal(dec("-185")) {
		t.Errorf("CostDifference = %s, want -185", s.CostDifference)
	}
}

func TestCompare_QuantityChanged(t *testing.T) {
	source := baseline("v1")
	target := baseline("v2")
	target[2].Quantity = dec("3") // WHEEL 2 -> 3 at unit cost 100

	res, err := Compare(source, target, bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(res.Differences) != 1 {
		t.Fatalf("Differences = %d, want 1", len(res.Differences))
	}
	d := res.Differences[0]
	if d.Type != QuantityChanged || d.SourceNode.ComponentID != "WHEEL" {
		t.Errorf("difference = %+v, want QUANTITY_CHANGED on WHEEL", d)
	}
	if !res.Statistics.CostDifference.Equal(dec("100")) {
		t.Errorf("CostDifference = %s, want 100", res.Statistics.CostDifference)
	}
}

func TestCompare_Classification(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*bom.ComponentNode)
		want   Type
	}{
		{"unit cost", func(n *bom.ComponentNode) { n.UnitCost = dec("450") }, CostChanged},
		{"optional flag", func(n *bom.ComponentNode) { n.IsOptional = true }, PropertiesChanged},
		{"scrap rate", func(n *bom.ComponentNode) { n.ScrapRate = dec("3") }, PropertiesChanged},
		{"position", func(n *bom.ComponentNode) { n.Position = "left" }, PropertiesChanged},
		{"process step", func(n *bom.ComponentNode) { n.ProcessStep = "weld" }, PropertiesChanged},
		// Quantity takes precedence over a simultaneous cost change.
		{"quantity wins", func(n *bom.ComponentNode) {
			n.Quantity = dec("9")
			n.UnitCost = dec("450")
		}, QuantityChanged},
		// A cost change wins over a simultaneous property change.
		{"cost wins", func(n *bom.ComponentNode) {
			n.UnitCost = dec("450")
			n.Position = "left"
		}, CostChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := baseline("v2")
			tt.mutate(&target[1]) // FRAME

			res, err := Compare(baseline("v1"), target, bom.DefaultFilter(), bom.Limits{})
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if len(res.Differences) != 1 {
				t.Fatalf("Differences = %d, want 1", len(res.Differences))
			}
			if got := res.Differences[0].Type; got != tt.want {
				t.Errorf("Type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompare_MovedComponent(t *testing.T) {
	// FRAME's WHEEL moves under BIKE directly: the path changes, so the
	// match is REMOVED at the old path and ADDED at the new one.
	source := []bom.ComponentNode{
		rec("v1", "BIKE", "", 1, "1", "0"),
		rec("v1", "FRAME", "v1-BIKE-1", 1, "1", "300"),
		rec("v1", "WHEEL", "v1-FRAME-1", 1, "2", "100"),
	}
	target := []bom.ComponentNode{
		rec("v2", "BIKE", "", 1, "1", "0"),
		rec("v2", "FRAME", "v2-BIKE-1", 1, "1", "300"),
		rec("v2", "WHEEL", "v2-BIKE-1", 2, "2", "100"),
	}

	res, err := Compare(source, target, bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	s := res.Statistics
	if s.AddedItems != 1 || s.RemovedItems != 1 || s.ModifiedItems != 0 {
		t.Errorf("Statistics = %+v, want 1 added, 1 removed", s)
	}
	if !s.CostDifference.IsZero() {
		t.Errorf("CostDifference = %s, want 0 for a pure move", s.CostDifference)
	}
}

func TestCompare_DuplicateSiblings(t *testing.T) {
	// Two WHEEL occurrences under the same parent pair first-to-first in
	// sequence order; the third in the target is an addition.
	source := []bom.ComponentNode{
		rec("v1", "BIKE", "", 1, "1", "0"),
		rec("v1", "WHEEL", "v1-BIKE-1", 1, "1", "100"),
		rec("v1", "WHEEL", "v1-BIKE-1", 2, "1", "100"),
	}
	target := []bom.ComponentNode{
		rec("v2", "BIKE", "", 1, "1", "0"),
		rec("v2", "WHEEL", "v2-BIKE-1", 1, "4", "100"),
		rec("v2", "WHEEL", "v2-BIKE-1", 2, "1", "100"),
		rec("v2", "WHEEL", "v2-BIKE-1", 3, "1", "100"),
	}

	res, err := Compare(source, target, bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	s := res.Statistics
	if s.ModifiedItems != 1 || s.AddedItems != 1 || s.UnchangedItems != 2 || s.RemovedItems != 0 {
		t.Errorf("Statistics = %+v, want 1 modified, 1 added, 2 unchanged", s)
	}
}

func TestCompare_InvalidSideRefused(t *testing.T) {
	broken := []bom.ComponentNode{
		rec("v1", "A", "v1-B-1", 1, "1", "0"),
	}
	broken[0].ID = "v1-A-1"
	broken = append(broken, broken[0]) // duplicate node ID

	_, err := Compare(broken, baseline("v2"), bom.DefaultFilter(), bom.Limits{})
	if err == nil {
		t.Fatal("Compare() accepted an invalid source")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
	}

	_, err = Compare(baseline("v1"), broken, bom.DefaultFilter(), bom.Limits{})
	if err == nil {
		t.Fatal("Compare() accepted an invalid target")
	}
}

func TestCompare_FilterScoping(t *testing.T) {
	source := baseline("v1")
	target := baseline("v2")
	target[2].IsActive = false // WHEEL deactivated

	// Default filter hides inactive nodes, so the deactivation reads as a
	// removal.
	res, err := Compare(source, target, bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if res.Statistics.RemovedItems != 1 {
		t.Errorf("RemovedItems = %d, want 1", res.Statistics.RemovedItems)
	}

	f := bom.DefaultFilter()
	f.IncludeInactiveItems = true
	res, err = Compare(source, target, f, bom.Limits{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if res.Statistics.RemovedItems != 0 || res.Statistics.UnchangedItems != 3 {
		t.Errorf("Statistics = %+v, want the pair matched", res.Statistics)
	}
}

func TestCompare_ReversedArguments(t *testing.T) {
	// Reversing the inputs swaps the roles of added and removed and negates
	// the cost difference. Duplicates and a moved node are included so the
	// occurrence pairing is exercised in both directions.
	source := []bom.ComponentNode{
		rec("v1", "BIKE", "", 1, "1", "0"),
		rec("v1", "FRAME", "v1-BIKE-1", 1, "1", "300"),
		rec("v1", "WHEEL", "v1-FRAME-1", 1, "2", "100"),
		rec("v1", "BOLT", "v1-BIKE-1", 2, "1", "2"),
		rec("v1", "BOLT", "v1-BIKE-1", 3, "1", "2"),
	}
	target := []bom.ComponentNode{
		rec("v2", "BIKE", "", 1, "1", "0"),
		rec("v2", "FRAME", "v2-BIKE-1", 1, "1", "300"),
		rec("v2", "WHEEL", "v2-BIKE-1", 2, "2", "100"), // moved up a level
		rec("v2", "BOLT", "v2-BIKE-1", 3, "1", "2"),    // one duplicate dropped
		rec("v2", "BELL", "v2-BIKE-1", 4, "1", "15"),
	}

	fwd, err := Compare(source, target, bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare(source, target) error = %v", err)
	}
	rev, err := Compare(target, source, bom.DefaultFilter(), bom.Limits{})
	if err != nil {
		t.Fatalf("Compare(target, source) error = %v", err)
	}

	if fwd.Statistics.AddedItems != rev.Statistics.RemovedItems {
		t.Errorf("forward added = %d, reversed removed = %d",
			fwd.Statistics.AddedItems, rev.Statistics.RemovedItems)
	}
	if fwd.Statistics.RemovedItems != rev.Statistics.AddedItems {
		t.Errorf("forward removed = %d, reversed added = %d",
			fwd.Statistics.RemovedItems, rev.Statistics.AddedItems)
	}
	if fwd.Statistics.ModifiedItems != rev.Statistics.ModifiedItems ||
		fwd.Statistics.UnchangedItems != rev.Statistics.UnchangedItems ||
		fwd.Statistics.TotalItems != rev.Statistics.TotalItems {
		t.Errorf("forward = %+v, reversed = %+v", fwd.Statistics, rev.Statistics)
	}
	if !fwd.Statistics.CostDifference.Equal(rev.Statistics.CostDifference.Neg()) {
		t.Errorf("cost difference %s does not negate to %s",
			fwd.Statistics.CostDifference, rev.Statistics.CostDifference)
	}
}

func TestPathString(t *testing.T) {
	key := "BIKE\x1fFRAME\x1fWHEEL"
	if got, want := PathString(key), "BIKE / FRAME / WHEEL"; got != want {
		t.Errorf("PathString() = %q, want %q", got, want)
	}
}
