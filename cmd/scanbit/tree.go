package scanbit

import (
	"github.com/spf13/cobra"

	"github.com/scanbit/scanbit/internal/convert"
	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/settings"
)

var (
	treeSettings     string
	treeWithDefaults bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Convert a settings document and print the configuration tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lcfg, gcfg := loadConfigs()
			m, err := dynval.LoadFile(treeSettings)
			if err != nil {
				return err
			}
			if treeWithDefaults {
				m = settings.Merge(m, settings.Defaults())
			}
			root, err := convert.Builder{
				MaxDepth: pickInt(flagMaxDepth, lcfg.MaxDepth, gcfg.MaxDepth),
				MaxNodes: pickInt(flagMaxNodes, lcfg.MaxNodes, gcfg.MaxNodes),
			}.Build(m)
			if err != nil {
				return err
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"fingerprint": root.Fingerprint(),
					"tree":        root.String(),
				})
			}
			return printTree(cmd.OutOrStdout(), root, colorOutput(lcfg, gcfg))
		},
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&treeSettings, "settings", "s", "", "settings document (YAML, JSON or HCL by extension)")
	cmd.Flags().BoolVar(&treeWithDefaults, "with-defaults", false, "fill missing sections from the default settings")
	_ = cmd.MarkFlagRequired("settings")
}
