package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/guard"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
)

func buildTree(t *testing.T) *tree.Tree {
	t.Helper()
	inactive := bom.ComponentNode{
		ID: "n-old", BOMID: "b1", ComponentID: "OLD", ComponentType: bom.RawMaterial,
		ParentID: "n-bike", Sequence: 2, Quantity: decimal.NewFromInt(1),
	}
	records := []bom.ComponentNode{
		{ID: "n-bike", BOMID: "b1", ComponentID: "BIKE", ComponentType: bom.SubAssembly, Sequence: 1, Quantity: decimal.NewFromInt(1), IsActive: true},
		{ID: "n-frame", BOMID: "b1", ComponentID: "FRAME", ComponentType: bom.SemiFinished, ParentID: "n-bike", Sequence: 1, Quantity: decimal.NewFromInt(1), IsActive: true},
		inactive,
	}
	tr, err := tree.Build(records, bom.Limits{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tr
}

func TestTreeToDOT(t *testing.T) {
	dot := TreeToDOT(buildTree(t), Options{})

	if !strings.HasPrefix(dot, "digraph BOM {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `"n-bike" -> "n-frame";`) {
		t.Errorf("missing parent edge:\n%s", dot)
	}
	// Inactive nodes are skipped by default, edges included.
	if strings.Contains(dot, "n-old") {
		t.Errorf("inactive node rendered:\n%s", dot)
	}
}

func TestTreeToDOT_IncludeInactive(t *testing.T) {
	dot := TreeToDOT(buildTree(t), Options{IncludeInactive: true})

	if !strings.Contains(dot, `"n-old"`) || !strings.Contains(dot, "dashed") {
		t.Errorf("inactive node not rendered dashed:\n%s", dot)
	}
	if !strings.Contains(dot, `"n-bike" -> "n-old";`) {
		t.Errorf("missing edge to inactive node:\n%s", dot)
	}
}

func TestTreeToDOT_Detailed(t *testing.T) {
	dot := TreeToDOT(buildTree(t), Options{Detailed: true})
	if !strings.Contains(dot, "SEMI_FINISHED") {
		t.Errorf("detailed labels missing component type:\n%s", dot)
	}
}

func TestGraphToDOT(t *testing.T) {
	dot := GraphToDOT([]guard.Edge{
		{ProductID: "BIKE", ComponentProductID: "FRAME"},
	})
	if !strings.Contains(dot, `"BIKE" -> "FRAME";`) {
		t.Errorf("missing product edge:\n%s", dot)
	}
}
