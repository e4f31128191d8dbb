package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/guard"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/observability"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

// checkCommand dry-runs the cycle guard for a proposed attach.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		parentNodeID string
		componentID  string
	)

	cmd := &cobra.Command{
		Use:   "check [snapshot.json]",
		Short: "Check whether a component can be attached without creating a cycle",
		Long: `Check whether a component can be attached without creating a cycle.

The check is a dry run: it validates the proposed attach against the
snapshot's tree (the component must not be an ancestor of the target
parent) and against the product reference graph (the owning product must
not be reachable from the component's own BOM). Nothing is modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}

			t, err := tree.Build(s.Nodes, c.Limits)
			if err != nil {
				return err
			}

			req := guard.Request{
				OwnerProductID:     s.ProductID,
				ParentNodeID:       parentNodeID,
				ComponentProductID: componentID,
			}
			start := time.Now()
			dec := guard.CanAttach(t, guard.NewGraph(s.ProductEdges), req, c.Limits)
			observability.Engine().OnGuardCheck(cmd.Context(), s.ProductID, componentID, dec.OK, time.Since(start))

			if dec.OK {
				fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render(
					fmt.Sprintf("ok: %s can be attached", componentID)))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), styleError.Render("denied: "+dec.Err.Error()))
			if len(dec.Path) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("path: "+strings.Join(dec.Path, " -> ")))
			}
			return dec.Err
		},
	}

	cmd.Flags().StringVar(&parentNodeID, "parent", "", "target parent node ID (empty attaches at the root)")
	cmd.Flags().StringVar(&componentID, "component", "", "component product ID to attach")
	_ = cmd.MarkFlagRequired("component")
	return cmd
}
