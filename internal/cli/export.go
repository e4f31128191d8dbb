package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/rollup"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/export"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/snapshot"
)

// exportCommand emits DOT or SVG for a snapshot's tree or product graph.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format          string
		output          string
		productGraph    bool
		detailed        bool
		includeInactive bool
	)

	cmd := &cobra.Command{
		Use:   "export [snapshot.json]",
		Short: "Export a BOM tree or the product graph as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want dot or svg)", format)
			}

			s, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}

			var dot string
			if productGraph {
				dot = export.GraphToDOT(s.ProductEdges)
			} else {
				t, err := tree.Build(s.Nodes, c.Limits)
				if err != nil {
					return err
				}
				rollup.Apply(t, rollup.Options{IncludeInactiveItems: includeInactive})
				dot = export.TreeToDOT(t, export.Options{
					Detailed:        detailed,
					IncludeInactive: includeInactive,
				})
			}

			data := []byte(dot)
			if format == "svg" {
				if data, err = export.RenderSVG(dot); err != nil {
					return err
				}
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&productGraph, "product-graph", false, "export the product reference graph instead of the tree")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include quantity, cost, and type in node labels")
	cmd.Flags().BoolVar(&includeInactive, "include-inactive", false, "render logically removed nodes")
	return cmd
}
