package cli

import (
	"github.com/spf13/cobra"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/buildinfo"
)

// RootCommand builds the bomctl command tree.
//
// The persistent pre-run attaches the CLI logger to the command context and
// loads engine limits from the config file when one is present.
func (c *CLI) RootCommand() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   appName,
		Short: "bomctl inspects and validates manufacturing BOM trees",
		Long: `bomctl assembles flat BOM component records into validated trees,
rolls up scrap-adjusted quantities and costs, guards attach operations
against structural cycles, and diffs BOM versions.

Snapshots are JSON files carrying one BOM's flat records plus the
product reference graph (see the snapshot package for the format).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if p := configPath(cfgPath); p != "" {
				limits, err := loadConfig(p)
				if err != nil {
					return err
				}
				c.Limits = limits
				c.Logger.Debug("loaded config", "path", p)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ./bomctl.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.attachCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.deactivateCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.exportCommand())

	return root
}
