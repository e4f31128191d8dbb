package cli

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

func TestFilterFlags_Defaults(t *testing.T) {
	f := &filterFlags{minLevel: -1, maxLevel: -1}

	filter, err := f.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	if filter.IncludeInactiveItems {
		t.Error("IncludeInactiveItems = true, want false by default")
	}
	if !filter.IncludeOptionalItems {
		t.Error("IncludeOptionalItems = false, want true by default")
	}
	if filter.ComponentTypeFilter != nil || filter.LevelRange.Min != nil || filter.CostRange.Max != nil {
		t.Errorf("unexpected constraints in default filter: %+v", filter)
	}
}

func TestFilterFlags_Build(t *testing.T) {
	f := &filterFlags{
		includeInactive: true,
		excludeOptional: true,
		types:           "raw_material, SUB_ASSEMBLY",
		minLevel:        1,
		maxLevel:        3,
		minCost:         "10.5",
		maxCost:         "500",
	}

	filter, err := f.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	if !filter.IncludeInactiveItems || filter.IncludeOptionalItems {
		t.Errorf("flags not applied: %+v", filter)
	}
	if len(filter.ComponentTypeFilter) != 2 ||
		filter.ComponentTypeFilter[0] != bom.RawMaterial ||
		filter.ComponentTypeFilter[1] != bom.SubAssembly {
		t.Errorf("ComponentTypeFilter = %v", filter.ComponentTypeFilter)
	}
	if *filter.LevelRange.Min != 1 || *filter.LevelRange.Max != 3 {
		t.Errorf("LevelRange = [%v, %v]", filter.LevelRange.Min, filter.LevelRange.Max)
	}
	if !filter.CostRange.Min.Equal(decimal.RequireFromString("10.5")) ||
		!filter.CostRange.Max.Equal(decimal.RequireFromString("500")) {
		t.Errorf("CostRange = [%v, %v]", filter.CostRange.Min, filter.CostRange.Max)
	}
}

func TestFilterFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		f    filterFlags
	}{
		{"unknown type", filterFlags{minLevel: -1, maxLevel: -1, types: "gadget"}},
		{"bad min cost", filterFlags{minLevel: -1, maxLevel: -1, minCost: "lots"}},
		{"bad max cost", filterFlags{minLevel: -1, maxLevel: -1, maxCost: "1,5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f.build()
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("build() = %v, want INVALID_INPUT", err)
			}
		})
	}
}
