package scanbit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanbit/scanbit/internal/config"
	"github.com/scanbit/scanbit/internal/convert"
	"github.com/scanbit/scanbit/internal/settings"
)

var (
	cfgOutput string
	cfgForce  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .scanbit.yml with the CLI defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFile(cmd, cfgOutput, []byte(config.Template))
		},
	}
	cfgCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&cfgOutput, "output", config.FileNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the default scan settings as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := convert.Build(settings.Defaults())
			if err != nil {
				return err
			}
			return root.Encode(cmd.OutOrStdout())
		},
	}
	cfgCmd.AddCommand(settingsCmd)
}

func writeFile(cmd *cobra.Command, path string, body []byte) error {
	if !cfgForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
