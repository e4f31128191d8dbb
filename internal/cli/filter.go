package cli

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

// filterFlags collects the population filter shared by stats and diff.
type filterFlags struct {
	includeInactive bool
	excludeOptional bool
	types           string
	minLevel        int
	maxLevel        int
	minCost         string
	maxCost         string
}

// register adds the filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.includeInactive, "include-inactive", false, "include logically removed nodes")
	cmd.Flags().BoolVar(&f.excludeOptional, "exclude-optional", false, "exclude optional nodes")
	cmd.Flags().StringVar(&f.types, "types", "", "component types to include (comma-separated, default all)")
	cmd.Flags().IntVar(&f.minLevel, "min-level", -1, "minimum tree level")
	cmd.Flags().IntVar(&f.maxLevel, "max-level", -1, "maximum tree level")
	cmd.Flags().StringVar(&f.minCost, "min-cost", "", "minimum total cost")
	cmd.Flags().StringVar(&f.maxCost, "max-cost", "", "maximum total cost")
}

// build converts the flags into an engine filter.
func (f *filterFlags) build() (bom.Filter, error) {
	filter := bom.DefaultFilter()
	filter.IncludeInactiveItems = f.includeInactive
	filter.IncludeOptionalItems = !f.excludeOptional

	if f.types != "" {
		for _, raw := range strings.Split(f.types, ",") {
			t := bom.ComponentType(strings.ToUpper(strings.TrimSpace(raw)))
			if !t.IsValid() {
				return bom.Filter{}, errors.New(errors.ErrCodeInvalidInput, "unknown component type %q", raw)
			}
			filter.ComponentTypeFilter = append(filter.ComponentTypeFilter, t)
		}
	}
	if f.minLevel >= 0 {
		v := f.minLevel
		filter.LevelRange.Min = &v
	}
	if f.maxLevel >= 0 {
		v := f.maxLevel
		filter.LevelRange.Max = &v
	}
	if f.minCost != "" {
		d, err := decimal.NewFromString(f.minCost)
		if err != nil {
			return bom.Filter{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse --min-cost")
		}
		filter.CostRange.Min = &d
	}
	if f.maxCost != "" {
		d, err := decimal.NewFromString(f.maxCost)
		if err != nil {
			return bom.Filter{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse --max-cost")
		}
		filter.CostRange.Max = &d
	}
	return filter, nil
}
