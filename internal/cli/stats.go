package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/stats"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

// statsCommand aggregates statistics over a snapshot's records.
func (c *CLI) statsCommand() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "stats [snapshot.json]",
		Short: "Aggregate statistics over a BOM snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.build()
			if err != nil {
				return err
			}

			s, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}

			// Build first so levels are trustworthy, then aggregate over
			// the leveled records.
			t, err := tree.Build(s.Nodes, c.Limits)
			if err != nil {
				return err
			}
			agg := stats.Aggregate(t.Nodes(), filter, c.Limits)

			var sb strings.Builder
			sb.WriteString(styleTitle.Render("Statistics for BOM "+s.BOMID) + "\n\n")
			sb.WriteString(summaryRow("Total items", fmt.Sprintf("%d", agg.TotalItems)))
			sb.WriteString(summaryRow("Active items", fmt.Sprintf("%d", agg.ActiveItems)))
			sb.WriteString(summaryRow("Optional items", fmt.Sprintf("%d", agg.OptionalItems)))
			sb.WriteString(summaryRow("Critical items", fmt.Sprintf("%d", agg.CriticalItems)))
			sb.WriteString(summaryRow("Total cost", agg.TotalCost.StringFixed(2)))
			sb.WriteString(summaryRow("Avg cost per item", agg.AverageCostPerItem.StringFixed(2)))

			sb.WriteString("\n" + styleTitle.Render("By type") + "\n")
			for _, typ := range bom.ComponentTypes {
				if n := agg.CountByType[typ]; n > 0 {
					sb.WriteString(summaryRow(string(typ), fmt.Sprintf("%d", n)))
				}
			}

			sb.WriteString("\n" + styleTitle.Render("By level") + "\n")
			for lvl := 0; lvl <= t.MaxLevel; lvl++ {
				if n := agg.CountByLevel[lvl]; n > 0 {
					sb.WriteString(summaryRow(
						fmt.Sprintf("level %d", lvl),
						fmt.Sprintf("%d items, cost %s", n, agg.CostByLevel[lvl].StringFixed(2)),
					))
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
