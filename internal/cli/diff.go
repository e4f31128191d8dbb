package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/diff"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/observability"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

// diffCommand computes a classified difference between two snapshots.
func (c *CLI) diffCommand() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "diff [source.json] [target.json]",
		Short: "Diff two BOM snapshots",
		Long: `Diff two BOM snapshots of the same product.

Nodes are matched by component ID plus structural path; matched pairs are
classified as quantity, cost, or property changes. Both snapshots must
assemble into valid trees or the structural error is reported instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			filter, err := flags.build()
			if err != nil {
				return err
			}

			src, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}
			tgt, err := snapshot.ReadFile(args[1])
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := diff.Compare(src.Nodes, tgt.Nodes, filter, c.Limits)
			if err != nil {
				observability.Engine().OnDiff(cmd.Context(), 0, time.Since(start), err)
				return err
			}
			observability.Engine().OnDiff(cmd.Context(), len(res.Differences), time.Since(start), nil)
			logger.Debug("diff complete", "differences", len(res.Differences))

			var sb strings.Builder
			sb.WriteString(styleTitle.Render(fmt.Sprintf("Diff %s -> %s", src.BOMID, tgt.BOMID)) + "\n\n")
			for _, d := range res.Differences {
				sb.WriteString(renderDifference(d) + "\n")
			}

			st := res.Statistics
			sb.WriteString("\n")
			sb.WriteString(summaryRow("Components", fmt.Sprintf("%d", st.TotalItems)))
			sb.WriteString(summaryRow("Added", fmt.Sprintf("%d", st.AddedItems)))
			sb.WriteString(summaryRow("Removed", fmt.Sprintf("%d", st.RemovedItems)))
			sb.WriteString(summaryRow("Modified", fmt.Sprintf("%d", st.ModifiedItems)))
			sb.WriteString(summaryRow("Unchanged", fmt.Sprintf("%d", st.UnchangedItems)))
			sb.WriteString(summaryRow("Cost difference", st.CostDifference.StringFixed(2)))

			fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func renderDifference(d diff.Difference) string {
	switch d.Type {
	case diff.Added:
		return styleSuccess.Render(fmt.Sprintf("+ %s", describe(d.TargetNode)))
	case diff.Removed:
		return styleError.Render(fmt.Sprintf("- %s", describe(d.SourceNode)))
	case diff.QuantityChanged:
		return styleWarning.Render(fmt.Sprintf("~ %s  qty %s -> %s",
			d.TargetNode.ComponentID, d.SourceNode.Quantity, d.TargetNode.Quantity))
	case diff.CostChanged:
		return styleWarning.Render(fmt.Sprintf("~ %s  unit cost %s -> %s",
			d.TargetNode.ComponentID, d.SourceNode.UnitCost, d.TargetNode.UnitCost))
	default:
		return styleWarning.Render(fmt.Sprintf("~ %s  properties changed", d.TargetNode.ComponentID))
	}
}

func describe(n *bom.ComponentNode) string {
	return fmt.Sprintf("%s (%s x%s)", n.ComponentID, n.ComponentType, n.Quantity)
}
