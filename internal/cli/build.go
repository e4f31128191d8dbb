package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/rollup"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/observability"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

// buildCommand assembles a snapshot file into a tree, rolls up costs, and
// prints the tree with a summary.
func (c *CLI) buildCommand() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "build [snapshot.json]",
		Short: "Assemble a BOM snapshot into a validated tree",
		Long: `Assemble a BOM snapshot into a validated tree.

Levels are assigned breadth-first from the roots, siblings are ordered by
sequence, and orphan records (parent missing from the snapshot) become
additional roots with a warning. Costs are rolled up with scrap-adjusted
quantities using fixed-point arithmetic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			s, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			start := time.Now()
			t, err := tree.Build(s.Nodes, c.Limits)
			observability.Engine().OnBuild(cmd.Context(), s.BOMID, len(s.Nodes), time.Since(start), err)
			if err != nil {
				return err
			}
			res := rollup.Apply(t, rollup.Options{IncludeInactiveItems: includeInactive})
			prog.done("built tree", "bom", s.BOMID, "nodes", t.TotalItems, "max_level", t.MaxLevel)

			var sb strings.Builder
			sb.WriteString(styleTitle.Render("BOM "+s.BOMID) + "\n\n")
			renderWarnings(&sb, t.Warnings)
			renderTree(&sb, t)

			sb.WriteString("\n")
			sb.WriteString(summaryRow("Total items", fmt.Sprintf("%d", t.TotalItems)))
			sb.WriteString(summaryRow("Max level", fmt.Sprintf("%d", t.MaxLevel)))
			sb.WriteString(summaryRow("Total cost", res.GrandTotal.StringFixed(2)))
			for _, lvl := range res.Levels() {
				sb.WriteString(summaryRow(fmt.Sprintf("  level %d", lvl), res.CostByLevel[lvl].StringFixed(2)))
			}

			fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "include-inactive", false, "include logically removed nodes in totals")
	return cmd
}
